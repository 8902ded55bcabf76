package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/database"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/events"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CloudEvent
	keys   []string
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, key string, ce events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ce)
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newTestService(t *testing.T) (*application.PetService, *recordingPublisher) {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repository.PetModel{}))

	pub := &recordingPublisher{}
	svc := application.NewPetService(
		repository.NewGormPetRepository(db),
		petDomain.FallbackDefaultImages,
		pub,
		zaptest.NewLogger(t),
	)
	return svc, pub
}

func labInput() api.RecordInput {
	return api.RecordInput{
		Type: "Dog", Breed: "Lab", Age: 2, Weight: 12.5,
		Gender: "Male", Price: 5000, Status: "Available",
	}
}

func TestCreatePet_AssignsDefaultImageWhenOmitted(t *testing.T) {
	svc, pub := newTestService(t)

	rec, err := svc.CreatePet(context.Background(), labInput())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, petDomain.FallbackDefaultImages[petDomain.PetTypeDog], rec.ImageURL)
	assert.Equal(t, int64(1), rec.Version)
	assert.Equal(t, []string{events.PetRecordCreated}, pub.types())
	assert.Equal(t, rec.ID, pub.keys[0])
}

func TestCreatePet_KeepsCustomImage(t *testing.T) {
	svc, _ := newTestService(t)
	in := labInput()
	url := "https://my.host/rex.jpg"
	in.ImageURL = &url

	rec, err := svc.CreatePet(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, url, rec.ImageURL)
}

func TestCreatePet_ValidationError(t *testing.T) {
	svc, pub := newTestService(t)
	in := labInput()
	in.Gender = "Other"

	_, err := svc.CreatePet(context.Background(), in)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, pub.types())
}

func TestCreatePet_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc, pub := newTestService(t)
	pub.err = errors.New("broker down")

	_, err := svc.CreatePet(context.Background(), labInput())
	assert.NoError(t, err)
}

func TestUpdatePet_ReassignsDefaultForNewType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreatePet(ctx, labInput())
	require.NoError(t, err)

	in := labInput()
	in.Type = "Cat"
	in.Breed = "Persian"
	updated, err := svc.UpdatePet(ctx, uuid.MustParse(rec.ID), in)
	require.NoError(t, err)
	assert.Equal(t, petDomain.FallbackDefaultImages[petDomain.PetTypeCat], updated.ImageURL)
	assert.Equal(t, int64(2), updated.Version)
}

func TestUpdatePet_StaleVersionConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreatePet(ctx, labInput())
	require.NoError(t, err)
	id := uuid.MustParse(rec.ID)

	in := labInput()
	in.Version = 1
	in.Status = "Reserved"
	_, err = svc.UpdatePet(ctx, id, in)
	require.NoError(t, err)

	in.Status = "Sold"
	_, err = svc.UpdatePet(ctx, id, in)
	assert.True(t, domain.IsConflict(err))
}

func TestUpdatePet_WithoutVersionOverwrites(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreatePet(ctx, labInput())
	require.NoError(t, err)
	id := uuid.MustParse(rec.ID)

	for _, status := range []string{"Sold", "Available", "Reserved"} {
		in := labInput()
		in.Status = status
		got, err := svc.UpdatePet(ctx, id, in)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestUpdatePet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdatePet(context.Background(), uuid.New(), labInput())
	assert.True(t, domain.IsNotFound(err))
}

func TestDeletePet(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreatePet(ctx, labInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeletePet(ctx, uuid.MustParse(rec.ID)))

	list, err := svc.ListPets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, []string{events.PetRecordCreated, events.PetRecordDeleted}, pub.types())

	err = svc.DeletePet(ctx, uuid.MustParse(rec.ID))
	assert.True(t, domain.IsNotFound(err))
}

func TestPetStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePet(ctx, labInput())
	require.NoError(t, err)
	in := labInput()
	in.Status = "Sold"
	_, err = svc.CreatePet(ctx, in)
	require.NoError(t, err)

	stats, err := svc.PetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["Sold"])
}

func TestDefaultImages(t *testing.T) {
	svc, _ := newTestService(t)
	m := svc.DefaultImages()
	assert.Len(t, m, len(petDomain.PetTypes))
	assert.Equal(t, petDomain.FallbackDefaultImages[petDomain.PetTypeFish], m["Fish"])
}
