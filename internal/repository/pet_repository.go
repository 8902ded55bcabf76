package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetType        string    `gorm:"type:varchar(20);not null;index"`
	Breed          string    `gorm:"type:varchar(100);not null"`
	Age            float64   `gorm:"type:decimal(6,2);not null"`
	WeightKg       float64   `gorm:"type:decimal(7,2);not null"`
	Gender         string    `gorm:"type:varchar(10);not null"`
	Price          float64   `gorm:"type:decimal(12,2);not null"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	ImageURL       string    `gorm:"type:text"`
	Description    string    `gorm:"type:text"`
	MedicalHistory string    `gorm:"type:text"`
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) ListAll(ctx context.Context) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets, nil
}

func (r *GormPetRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count pets by status: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	previousVersion := pet.Version() - 1

	// Select("*") writes zero values too: an edit is a full replace.
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("pet was modified by another operator")
	}
	return nil
}

func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PetModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Pet", id.String())
	}
	return nil
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:             p.ID(),
		PetType:        string(p.PetType()),
		Breed:          p.Breed(),
		Age:            p.Age(),
		WeightKg:       p.WeightKg(),
		Gender:         string(p.Gender()),
		Price:          p.Price(),
		Status:         string(p.Status()),
		ImageURL:       p.ImageURL(),
		Description:    p.Description(),
		MedicalHistory: p.MedicalHistory(),
		Version:        p.Version(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID,
		petDomain.Attributes{
			PetType:        petDomain.PetType(m.PetType),
			Breed:          m.Breed,
			Age:            m.Age,
			WeightKg:       m.WeightKg,
			Gender:         petDomain.Gender(m.Gender),
			Price:          m.Price,
			Status:         petDomain.Status(m.Status),
			ImageURL:       m.ImageURL,
			Description:    m.Description,
			MedicalHistory: m.MedicalHistory,
		},
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
