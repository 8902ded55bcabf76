// Package syncclient keeps a local copy of the pet inventory in step with the
// record store. Every successful mutation is followed by a full reload; the
// cache is never patched in place.
//
// Operations do not serialize against each other. Two in-flight operations
// may race and the later response wins the cache; the store's version check
// keeps a stale edit from silently overwriting a newer one.
package syncclient

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/imagepolicy"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/report"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/search"
)

// Store is the record store as seen by the client.
type Store interface {
	List(ctx context.Context) ([]api.Record, error)
	Create(ctx context.Context, in api.RecordInput) (*api.MutationResponse, error)
	Update(ctx context.Context, id string, in api.RecordInput) (*api.MutationResponse, error)
	Delete(ctx context.Context, id string) (*api.MutationResponse, error)
	DefaultImages(ctx context.Context) (map[string]string, error)
}

const (
	msgFetchFailed  = "Failed to fetch pets"
	msgSaveFailed   = "Failed to save pet"
	msgDeleteFailed = "Failed to delete pet"
	msgAdded        = "Pet added successfully"
	msgUpdated      = "Pet updated successfully"
	msgDeleted      = "Pet deleted successfully"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithNotifier replaces the default notifier.
func WithNotifier(n *Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// Client owns the record cache and the default image table.
type Client struct {
	store    Store
	logger   *zap.Logger
	notifier *Notifier

	mu       sync.RWMutex
	records  []api.Record
	defaults petDomain.DefaultImages
	armedID  string
}

// New creates a Client with an empty cache and the fallback image table.
func New(store Store, opts ...Option) *Client {
	c := &Client{
		store:    store,
		logger:   zap.NewNop(),
		records:  []api.Record{},
		defaults: petDomain.FallbackDefaultImages.Clone(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = NewNotifier(DefaultNotifyDelay, nil)
	}
	return c
}

// Notifier returns the client's notification state.
func (c *Client) Notifier() *Notifier { return c.notifier }

// Start fetches the default image table and the record list concurrently.
// A failed table fetch keeps the fallback table and is not returned; a
// failed list fetch is.
func (c *Client) Start(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := c.LoadDefaultImages(ctx); err != nil {
			c.logger.Warn("using fallback default images", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		return c.Load(ctx)
	})
	return g.Wait()
}

// LoadDefaultImages refreshes the default image table. Entries the store
// omits keep their fallback value; on failure the table is unchanged.
func (c *Client) LoadDefaultImages(ctx context.Context) error {
	table, err := c.store.DefaultImages(ctx)
	if err != nil {
		return &FetchError{What: "default images", Err: err}
	}

	merged := petDomain.NewDefaultImages(table)
	c.mu.Lock()
	c.defaults = merged
	c.mu.Unlock()
	return nil
}

// Load replaces the cache with the store's current record list. On failure
// the previous cache is kept and an error notification is shown.
func (c *Client) Load(ctx context.Context) error {
	records, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("failed to load pets", zap.Error(err))
		c.notifier.Error(storeMessage(err, msgFetchFailed))
		return &FetchError{What: "pets", Err: err}
	}

	fresh := make([]api.Record, len(records))
	copy(fresh, records)

	c.mu.Lock()
	c.records = fresh
	c.mu.Unlock()

	c.logger.Debug("pets loaded", zap.Int("count", len(fresh)))
	return nil
}

// Records returns a snapshot of the cache in store order.
func (c *Client) Records() []api.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Record, len(c.records))
	copy(out, c.records)
	return out
}

// DefaultImages returns a copy of the current default image table.
func (c *Client) DefaultImages() petDomain.DefaultImages {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults.Clone()
}

// Search filters a snapshot of the cache.
func (c *Client) Search(query string) []api.Record {
	return search.Filter(query, c.Records())
}

// Report exports the full cache, ignoring any search in effect.
func (c *Client) Report() (*report.Report, error) {
	return report.Generate(c.Records())
}

// NewForm opens a create form for type t.
func (c *Client) NewForm(t petDomain.PetType) *imagepolicy.Form {
	return imagepolicy.NewCreateForm(c.DefaultImages(), t)
}

// EditForm opens the cached record id for editing.
func (c *Client) EditForm(id string) (*imagepolicy.Form, error) {
	for _, r := range c.Records() {
		if r.ID == id {
			return imagepolicy.EditForm(c.DefaultImages(), r), nil
		}
	}
	return nil, fmt.Errorf("pet %s is not in the loaded inventory", id)
}

// Submit validates the form, creates or updates the record and reloads the
// cache. A rejected submission leaves the cache untouched and returns a
// *ValidationError. A successful submission returns the reload's error, if
// any.
func (c *Client) Submit(ctx context.Context, form *imagepolicy.Form, isEdit bool) error {
	in := form.Input()
	if _, err := in.Attributes(); err != nil {
		return c.rejected(err.Error(), err)
	}
	if isEdit && form.ID() == "" {
		return c.rejected("pet id is required for update", nil)
	}

	var (
		resp     *api.MutationResponse
		err      error
		fallback = msgAdded
	)
	if isEdit {
		fallback = msgUpdated
		resp, err = c.store.Update(ctx, form.ID(), in)
	} else {
		resp, err = c.store.Create(ctx, in)
	}
	if err != nil {
		c.logger.Warn("pet submission rejected",
			zap.Bool("edit", isEdit),
			zap.String("pet_id", form.ID()),
			zap.Error(err),
		)
		return c.rejected(storeMessage(err, msgSaveFailed), err)
	}

	c.notifier.Success(successMessage(resp, fallback))
	return c.Load(ctx)
}

// ArmDelete arms the delete confirmation for id, replacing any other.
func (c *Client) ArmDelete(id string) {
	c.mu.Lock()
	c.armedID = id
	c.mu.Unlock()
}

// CancelDelete disarms any pending delete confirmation.
func (c *Client) CancelDelete() {
	c.ArmDelete("")
}

// Armed returns the id awaiting delete confirmation, or "".
func (c *Client) Armed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.armedID
}

// Remove deletes id if and only if it is armed; otherwise it does nothing
// and never contacts the store. The confirmation is cleared either way once
// a delete is attempted.
func (c *Client) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	if id == "" || c.armedID != id {
		c.mu.Unlock()
		return nil
	}
	c.armedID = ""
	c.mu.Unlock()

	resp, err := c.store.Delete(ctx, id)
	if err != nil {
		msg := storeMessage(err, msgDeleteFailed)
		c.logger.Warn("pet delete rejected", zap.String("pet_id", id), zap.Error(err))
		c.notifier.Error(msg)
		return &DeleteError{ID: id, Message: msg, Err: err}
	}

	c.notifier.Success(successMessage(resp, msgDeleted))
	return c.Load(ctx)
}

// ToggleDelete is the row delete gesture: the first call arms id, a second
// call on the same id executes the delete. Calling it on another row re-arms
// that row instead.
func (c *Client) ToggleDelete(ctx context.Context, id string) error {
	if c.Armed() == id {
		return c.Remove(ctx, id)
	}
	c.ArmDelete(id)
	return nil
}

func (c *Client) rejected(msg string, err error) error {
	c.notifier.Error(msg)
	return &ValidationError{Message: msg, Err: err}
}

func successMessage(resp *api.MutationResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}
