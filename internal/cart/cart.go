// Package cart is the per-user cart: in-memory entries persisted to the
// local key-value store, never synced to the remote store.
package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/araujodev/zapvitrine/internal/kvstore"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/session"
)

var ErrNotVisible = errors.New("cart is not available for this account")

// Entry is one (product, quantity) pair. The product fields are a snapshot:
// the cart never reaches back to the remote store.
type Entry struct {
	ProductID   uuid.UUID `json:"product_id"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Quantity    int       `json:"quantity"`
}

type Cart struct {
	Sess  *session.Session
	Store kvstore.Store

	entries []Entry
}

func storageKey(uid string) string {
	return "cart:" + uid
}

// Load restores the persisted cart for the session's user. When the session
// is not visible the persisted record is discarded, not merely hidden.
func Load(ctx context.Context, store kvstore.Store, sess *session.Session) *Cart {
	c := &Cart{Sess: sess, Store: store}
	if sess.UID() == "" {
		return c
	}
	if !sess.Visible() {
		c.Discard(ctx)
		return c
	}
	var entries []Entry
	found, err := store.Get(ctx, storageKey(sess.UID()), &entries)
	if err != nil {
		logging.FromContext(ctx).Error("cart load failed", "uid", sess.UID(), "error", err)
		return c
	}
	if found {
		c.entries = entries
	}
	return c
}

// persist writes the whole cart; failures are logged and never surfaced,
// the in-memory state is authoritative for the session.
func (c *Cart) persist(ctx context.Context) {
	if c.Store == nil || c.Sess.UID() == "" {
		return
	}
	if err := c.Store.Set(ctx, storageKey(c.Sess.UID()), c.entries); err != nil {
		logging.FromContext(ctx).Error("cart persist failed", "uid", c.Sess.UID(), "error", err)
	}
}

func (c *Cart) find(id uuid.UUID) int {
	for i := range c.entries {
		if c.entries[i].ProductID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product in the cart. A product already present
// gets its quantity incremented, never a second entry.
func (c *Cart) Add(ctx context.Context, p models.Product) error {
	if !c.Sess.Visible() {
		return ErrNotVisible
	}
	if i := c.find(p.ID); i >= 0 {
		c.entries[i].Quantity++
	} else {
		c.entries = append(c.entries, Entry{
			ProductID:   p.ID,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    1,
		})
	}
	c.persist(ctx)
	return nil
}

// Remove deletes the entry. Removing an absent product leaves the cart
// unchanged and performs no persistence write.
func (c *Cart) Remove(ctx context.Context, id uuid.UUID) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.persist(ctx)
}

// SetQuantity overwrites the entry's quantity; n < 1 is equivalent to Remove.
func (c *Cart) SetQuantity(ctx context.Context, id uuid.UUID, n int) {
	if n < 1 {
		c.Remove(ctx, id)
		return
	}
	i := c.find(id)
	if i < 0 {
		return
	}
	c.entries[i].Quantity = n
	c.persist(ctx)
}

// Clear empties the cart and erases its persisted record.
func (c *Cart) Clear(ctx context.Context) {
	c.entries = nil
	c.Discard(ctx)
}

// Discard erases the persisted record without touching in-memory entries.
func (c *Cart) Discard(ctx context.Context) {
	if c.Store == nil || c.Sess.UID() == "" {
		return
	}
	if err := c.Store.Delete(ctx, storageKey(c.Sess.UID())); err != nil {
		logging.FromContext(ctx).Error("cart discard failed", "uid", c.Sess.UID(), "error", err)
	}
}

func (c *Cart) Items() []Entry {
	if !c.Sess.Visible() {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// TotalItems is the sum of quantities; 0 whenever the cart is not visible,
// regardless of what is stored.
func (c *Cart) TotalItems() int {
	if !c.Sess.Visible() {
		return 0
	}
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}
