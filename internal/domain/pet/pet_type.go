package pet

import "fmt"

// PetType is the kind of animal a record describes.
type PetType string

const (
	PetTypeDog    PetType = "Dog"
	PetTypeCat    PetType = "Cat"
	PetTypeBird   PetType = "Bird"
	PetTypeFish   PetType = "Fish"
	PetTypeRabbit PetType = "Rabbit"
)

// PetTypes lists every supported type in display order.
var PetTypes = []PetType{PetTypeDog, PetTypeCat, PetTypeBird, PetTypeFish, PetTypeRabbit}

// IsValid returns true if the pet type is recognized.
func (t PetType) IsValid() bool {
	switch t {
	case PetTypeDog, PetTypeCat, PetTypeBird, PetTypeFish, PetTypeRabbit:
		return true
	}
	return false
}

func (t PetType) String() string { return string(t) }

// ParsePetType converts a string to a PetType, returning an error if invalid.
func ParsePetType(s string) (PetType, error) {
	t := PetType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid pet type: %s", s)
	}
	return t, nil
}

// Gender of the animal.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsValid returns true if the gender is recognized.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) String() string { return string(g) }

// ParseGender converts a string to a Gender, returning an error if invalid.
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid gender: %s", s)
	}
	return g, nil
}

// Status is the adoption state of a record. Any status may be set to any
// other; there is no transition table.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusReserved  Status = "Reserved"
	StatusSold      Status = "Sold"
)

// Statuses lists every supported status in display order.
var Statuses = []Status{StatusAvailable, StatusReserved, StatusSold}

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}
