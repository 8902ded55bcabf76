// Package api holds the JSON contract spoken between the record store and its
// clients.
package api

import (
	"fmt"

	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
)

// Record is the wire representation of a pet record.
type Record struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Breed          string  `json:"breed"`
	Age            float64 `json:"age"`
	Weight         float64 `json:"weight"`
	Gender         string  `json:"gender"`
	Price          float64 `json:"price"`
	Status         string  `json:"status"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Description    string  `json:"description,omitempty"`
	MedicalHistory string  `json:"medicalHistory,omitempty"`
	Version        int64   `json:"version,omitempty"`
}

// RecordInput is the create/update body. ImageURL is nil when the operator
// relies on the store's per-type default.
type RecordInput struct {
	Type           string  `json:"type" binding:"required"`
	Breed          string  `json:"breed" binding:"required"`
	Age            float64 `json:"age"`
	Weight         float64 `json:"weight"`
	Gender         string  `json:"gender" binding:"required"`
	Price          float64 `json:"price"`
	Status         string  `json:"status" binding:"required"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	Description    string  `json:"description,omitempty"`
	MedicalHistory string  `json:"medicalHistory,omitempty"`
	Version        int64   `json:"version,omitempty"`
}

// Attributes converts the input into validated domain attributes. A nil
// ImageURL yields an empty image the store fills from its default table.
func (in RecordInput) Attributes() (petDomain.Attributes, error) {
	attrs := petDomain.Attributes{
		PetType:        petDomain.PetType(in.Type),
		Breed:          in.Breed,
		Age:            in.Age,
		WeightKg:       in.Weight,
		Gender:         petDomain.Gender(in.Gender),
		Price:          in.Price,
		Status:         petDomain.Status(in.Status),
		Description:    in.Description,
		MedicalHistory: in.MedicalHistory,
	}
	if in.ImageURL != nil {
		attrs.ImageURL = *in.ImageURL
	}
	if err := attrs.Validate(); err != nil {
		return petDomain.Attributes{}, fmt.Errorf("invalid pet data: %w", err)
	}
	return attrs, nil
}

// HasCustomImage reports whether the input carries an explicit image URL.
func (in RecordInput) HasCustomImage() bool {
	return in.ImageURL != nil && *in.ImageURL != ""
}

// MutationResponse is returned by create, update and delete. Exactly one of
// Message or Error is set.
type MutationResponse struct {
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
	Pet     *Record `json:"pet,omitempty"`
}

// DefaultImagesResponse carries the store's default image table.
type DefaultImagesResponse struct {
	DefaultImages map[string]string `json:"defaultImages"`
}

// StatsResponse summarizes the inventory for the admin dashboard.
type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
