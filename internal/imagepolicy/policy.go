// Package imagepolicy decides which image a pet record carries: the store's
// per-type default or a URL the operator typed in.
package imagepolicy

import (
	"strings"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
)

// Mode is the image state of a form being edited.
type Mode int

const (
	ModeDefault Mode = iota
	ModeCustom
)

func (m Mode) String() string {
	if m == ModeCustom {
		return "custom"
	}
	return "default"
}

// ResolveDefault returns the default image for t, or "" when the table has
// none.
func ResolveDefault(table petDomain.DefaultImages, t petDomain.PetType) string {
	return table.Resolve(t)
}

// Classify reports whether rec carries a custom image. An image is custom
// when it matches none of the URLs currently in table; an empty image is
// never custom.
//
// Classification is by value against the current table only: a record saved
// under an older table, or a type sharing another type's URL, can classify
// differently than it was saved.
func Classify(table petDomain.DefaultImages, rec api.Record) bool {
	if rec.ImageURL == "" {
		return false
	}
	return !table.IsDefault(rec.ImageURL)
}

// Details are the form fields that do not affect image resolution.
type Details struct {
	Breed          string
	Age            float64
	Weight         float64
	Gender         petDomain.Gender
	Price          float64
	Status         petDomain.Status
	Description    string
	MedicalHistory string
}

// Form is the working copy of a record being created or edited. It never
// aliases the cached record it was opened from.
type Form struct {
	table  petDomain.DefaultImages
	record api.Record
	mode   Mode
}

// NewCreateForm opens an empty form for a new record of type t, showing t's
// default image.
func NewCreateForm(table petDomain.DefaultImages, t petDomain.PetType) *Form {
	f := &Form{
		table: table,
		record: api.Record{
			Type:   string(t),
			Gender: string(petDomain.GenderMale),
			Status: string(petDomain.StatusAvailable),
		},
		mode: ModeDefault,
	}
	f.record.ImageURL = ResolveDefault(table, t)
	return f
}

// EditForm opens rec for editing, classifying its image against table.
func EditForm(table petDomain.DefaultImages, rec api.Record) *Form {
	f := &Form{table: table, record: rec, mode: ModeDefault}
	if Classify(table, rec) {
		f.mode = ModeCustom
	}
	return f
}

// ID returns the id of the record being edited, or "" for a new record.
func (f *Form) ID() string { return f.record.ID }

// Mode returns the current image mode.
func (f *Form) Mode() Mode { return f.mode }

// Record returns a copy of the form's current values.
func (f *Form) Record() api.Record { return f.record }

// SetType changes the type. In default mode the image follows the new type.
func (f *Form) SetType(t petDomain.PetType) {
	f.record.Type = string(t)
	if f.mode == ModeDefault {
		f.record.ImageURL = ResolveDefault(f.table, t)
	}
}

// SetImageURL records what the operator typed into the image field. A
// non-empty URL switches to custom mode; clearing it switches back to the
// current type's default.
func (f *Form) SetImageURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		f.mode = ModeDefault
		f.record.ImageURL = ResolveDefault(f.table, petDomain.PetType(f.record.Type))
		return
	}
	f.mode = ModeCustom
	f.record.ImageURL = url
}

// SetDetails replaces every non-image field.
func (f *Form) SetDetails(d Details) {
	f.record.Breed = d.Breed
	f.record.Age = d.Age
	f.record.Weight = d.Weight
	f.record.Gender = string(d.Gender)
	f.record.Price = d.Price
	f.record.Status = string(d.Status)
	f.record.Description = d.Description
	f.record.MedicalHistory = d.MedicalHistory
}

// Input builds the store payload. Default mode omits the image so the store
// assigns its own default; custom mode sends the literal URL.
func (f *Form) Input() api.RecordInput {
	in := api.RecordInput{
		Type:           f.record.Type,
		Breed:          f.record.Breed,
		Age:            f.record.Age,
		Weight:         f.record.Weight,
		Gender:         f.record.Gender,
		Price:          f.record.Price,
		Status:         f.record.Status,
		Description:    f.record.Description,
		MedicalHistory: f.record.MedicalHistory,
		Version:        f.record.Version,
	}
	if f.mode == ModeCustom {
		url := f.record.ImageURL
		in.ImageURL = &url
	}
	return in
}
