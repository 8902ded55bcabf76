package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Load(context.Context) error {
	r.calls++
	return r.err
}

func newTestConsumer(t *testing.T, r Reloader) *PetEventConsumer {
	return &PetEventConsumer{reloader: r, logger: zaptest.NewLogger(t)}
}

func eventMessage(t *testing.T, eventType string, evt PetRecordEvent) kafkago.Message {
	t.Helper()
	ce, err := NewCloudEvent("test", eventType, evt)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: TopicPetEvents, Key: []byte(evt.PetID.String()), Value: value}
}

func TestHandleMessage_ReloadsOnEveryPetEvent(t *testing.T) {
	r := &countingReloader{}
	c := newTestConsumer(t, r)

	var seen []string
	c.OnEvent(func(_ PetRecordEvent, eventType string) { seen = append(seen, eventType) })

	evt := PetRecordEvent{PetID: uuid.New(), PetType: "Dog", Status: "Available", Version: 1, OccurredAt: time.Now().UTC()}
	for _, typ := range []string{PetRecordCreated, PetRecordUpdated, PetRecordDeleted} {
		require.NoError(t, c.handleMessage(context.Background(), eventMessage(t, typ, evt)))
	}

	assert.Equal(t, 3, r.calls)
	assert.Equal(t, []string{PetRecordCreated, PetRecordUpdated, PetRecordDeleted}, seen)
}

func TestHandleMessage_IgnoresUnknownAndMalformed(t *testing.T) {
	r := &countingReloader{}
	c := newTestConsumer(t, r)

	require.NoError(t, c.handleMessage(context.Background(), eventMessage(t, "booking.created", PetRecordEvent{PetID: uuid.New()})))
	require.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")}))
	require.NoError(t, c.handleMessage(context.Background(), kafkago.Message{
		Value: []byte(`{"specversion":"1.0","type":"pet.record.created","data":"oops"}`),
	}))

	assert.Zero(t, r.calls)
}

func TestHandleMessage_ReloadFailureIsRetried(t *testing.T) {
	r := &countingReloader{err: errors.New("store unreachable")}
	c := newTestConsumer(t, r)

	err := c.handleMessage(context.Background(), eventMessage(t, PetRecordUpdated, PetRecordEvent{PetID: uuid.New()}))
	assert.ErrorContains(t, err, "store unreachable")
	assert.Equal(t, 1, r.calls)
}

func TestParseCloudEvent(t *testing.T) {
	id := uuid.New()
	ce, err := NewCloudEvent("service-pet-inventory", PetRecordCreated, PetRecordEvent{PetID: id, Version: 1})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)

	var evt PetRecordEvent
	require.NoError(t, parsed.ParseData(&evt))
	assert.Equal(t, id, evt.PetID)

	_, err = ParseCloudEvent([]byte(`{"specversion":"1.0"}`))
	assert.ErrorContains(t, err, "missing type")
}
