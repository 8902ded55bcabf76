package pet

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attributes holds every operator-editable field of a pet record.
type Attributes struct {
	PetType        PetType
	Breed          string
	Age            float64
	WeightKg       float64
	Gender         Gender
	Price          float64
	Status         Status
	ImageURL       string
	Description    string
	MedicalHistory string
}

// Validate checks enumerations, required text and numeric bounds.
func (a Attributes) Validate() error {
	if !a.PetType.IsValid() {
		return fmt.Errorf("invalid pet type: %q", a.PetType)
	}
	if strings.TrimSpace(a.Breed) == "" {
		return fmt.Errorf("breed is required")
	}
	if a.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if a.WeightKg < 0 {
		return fmt.Errorf("weight cannot be negative")
	}
	if !a.Gender.IsValid() {
		return fmt.Errorf("invalid gender: %q", a.Gender)
	}
	if a.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("invalid status: %q", a.Status)
	}
	return nil
}

// Pet is the aggregate root for an adoptable animal record.
type Pet struct {
	id        uuid.UUID
	attrs     Attributes
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewPet creates a new record with validated fields.
func NewPet(attrs Attributes) (*Pet, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Pet{
		id:        uuid.New(),
		attrs:     attrs,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(id uuid.UUID, attrs Attributes, version int64, createdAt, updatedAt time.Time) *Pet {
	return &Pet{
		id:        id,
		attrs:     attrs,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID { return p.id }
func (p *Pet) Attributes() Attributes { return p.attrs }
func (p *Pet) PetType() PetType { return p.attrs.PetType }
func (p *Pet) Breed() string { return p.attrs.Breed }
func (p *Pet) Age() float64 { return p.attrs.Age }
func (p *Pet) WeightKg() float64 { return p.attrs.WeightKg }
func (p *Pet) Gender() Gender { return p.attrs.Gender }
func (p *Pet) Price() float64 { return p.attrs.Price }
func (p *Pet) Status() Status { return p.attrs.Status }
func (p *Pet) ImageURL() string { return p.attrs.ImageURL }
func (p *Pet) Description() string { return p.attrs.Description }
func (p *Pet) MedicalHistory() string { return p.attrs.MedicalHistory }
func (p *Pet) Version() int64 { return p.version }
func (p *Pet) CreatedAt() time.Time { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// Replace overwrites every editable field. Edits are full-record replaces,
// never partial patches.
func (p *Pet) Replace(attrs Attributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	p.attrs = attrs
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

// AssignDefaultImage sets the image to the table default for the record's type.
func (p *Pet) AssignDefaultImage(defaults DefaultImages) {
	p.attrs.ImageURL = defaults.Resolve(p.attrs.PetType)
}
