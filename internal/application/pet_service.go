package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventSource = "service-pet-inventory"

// PetService implements use cases for the pet inventory.
type PetService struct {
	repo      petDomain.PetRepository
	defaults  petDomain.DefaultImages
	publisher events.Publisher
	logger    *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(
	repo petDomain.PetRepository,
	defaults petDomain.DefaultImages,
	publisher events.Publisher,
	logger *zap.Logger,
) *PetService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PetService{
		repo:      repo,
		defaults:  defaults.Clone(),
		publisher: publisher,
		logger:    logger,
	}
}

// ListPets returns every record in creation order.
func (s *PetService) ListPets(ctx context.Context) ([]api.Record, error) {
	pets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	records := make([]api.Record, len(pets))
	for i, p := range pets {
		records[i] = toRecord(p)
	}
	return records, nil
}

// CreatePet creates a new record. Without an explicit image URL the record
// gets the default image for its type.
func (s *PetService) CreatePet(ctx context.Context, req api.RecordInput) (*api.Record, error) {
	attrs, err := req.Attributes()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	pet, err := petDomain.NewPet(attrs)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if !req.HasCustomImage() {
		pet.AssignDefaultImage(s.defaults)
	}

	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet record created",
		zap.String("pet_id", pet.ID().String()),
		zap.String("pet_type", string(pet.PetType())),
	)
	s.publish(ctx, events.PetRecordCreated, pet)

	result := toRecord(pet)
	return &result, nil
}

// UpdatePet replaces every editable field of a record. A non-zero
// req.Version must match the stored version.
func (s *PetService) UpdatePet(ctx context.Context, petID uuid.UUID, req api.RecordInput) (*api.Record, error) {
	attrs, err := req.Attributes()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if req.Version != 0 && req.Version != pet.Version() {
		return nil, domain.NewConflictError(fmt.Sprintf(
			"pet was modified by another operator (version %d, yours %d)", pet.Version(), req.Version))
	}

	if err := pet.Replace(attrs); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if !req.HasCustomImage() {
		pet.AssignDefaultImage(s.defaults)
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("pet record updated",
		zap.String("pet_id", petID.String()),
		zap.Int64("version", pet.Version()),
	)
	s.publish(ctx, events.PetRecordUpdated, pet)

	result := toRecord(pet)
	return &result, nil
}

// DeletePet permanently removes a record.
func (s *PetService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, petID); err != nil {
		s.logger.Error("failed to delete pet", zap.String("pet_id", petID.String()), zap.Error(err))
		return err
	}

	s.logger.Info("pet record deleted", zap.String("pet_id", petID.String()))
	s.publish(ctx, events.PetRecordDeleted, pet)
	return nil
}

// DefaultImages returns the store's default image table keyed by type name.
func (s *PetService) DefaultImages() map[string]string {
	return s.defaults.StringMap()
}

// --- Admin methods ---

// PetStats returns record counts grouped by status.
func (s *PetService) PetStats(ctx context.Context) (*api.StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pet stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &api.StatsResponse{Total: total, ByStatus: counts}, nil
}

// --- Helpers ---

func (s *PetService) publish(ctx context.Context, eventType string, p *petDomain.Pet) {
	evt := events.PetRecordEvent{
		PetID:      p.ID(),
		PetType:    string(p.PetType()),
		Status:     string(p.Status()),
		Version:    p.Version(),
		OccurredAt: time.Now().UTC(),
	}
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicPetEvents, p.ID().String(), cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicPetEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toRecord(p *petDomain.Pet) api.Record {
	return api.Record{
		ID:             p.ID().String(),
		Type:           string(p.PetType()),
		Breed:          p.Breed(),
		Age:            p.Age(),
		Weight:         p.WeightKg(),
		Gender:         string(p.Gender()),
		Price:          p.Price(),
		Status:         string(p.Status()),
		ImageURL:       p.ImageURL(),
		Description:    p.Description(),
		MedicalHistory: p.MedicalHistory(),
		Version:        p.Version(),
	}
}
