package syncclient

import (
	"errors"
	"fmt"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/storeclient"
)

// FetchError is returned when the record list or default image table could
// not be fetched. Previously loaded state is kept.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.What, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError is returned when a create or update was rejected, locally
// or by the store. Message is what the operator sees.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// DeleteError is returned when the store rejected a delete.
type DeleteError struct {
	ID      string
	Message string
	Err     error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete pet %s: %s", e.ID, e.Message)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// storeMessage returns the store's own error text, or fallback when the
// failure never reached the store or it sent none.
func storeMessage(err error, fallback string) string {
	var se *storeclient.StoreError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
