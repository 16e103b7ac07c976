// Package cartstate holds the client-side cart: an in-memory list of line
// items that notifies subscribers and writes itself to a Storage after every
// change.
package cartstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/pkg/storefrontclient"
)

type Item struct {
	ID        string                   `json:"id"`
	ProductID string                   `json:"productId"`
	Quantity  int                      `json:"quantity"`
	Product   storefrontclient.Product `json:"product"`
}

type Cart interface {
	AddItem(product storefrontclient.Product, quantity int)
	RemoveItem(productID string)
	UpdateQuantity(productID string, quantity int)
	ClearCart()
	TotalItems() int
	TotalPrice() decimal.Decimal
	Items() []Item
	Subscribe(fn func([]Item)) (unsubscribe func())
}

type Store struct {
	mu      sync.Mutex
	items   []Item
	version uint64
	lastID  int64
	subs    map[int]func([]Item)
	nextSub int

	persistMu sync.Mutex
	saved     uint64

	storage        Storage
	logger         *slog.Logger
	onPersistError func(error)
	now            func() time.Time
	timeout        time.Duration
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// OnPersistError registers a hook for storage failures. Failures are never
// returned from mutations.
func OnPersistError(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// New returns an empty store that keeps its state in memory only.
func New(opts ...Option) *Store {
	s := &Store{
		subs:    make(map[int]func([]Item)),
		logger:  slog.Default(),
		now:     time.Now,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store backed by storage, rehydrated from whatever it holds.
// An unreadable record is reported like any other persistence failure and
// the store starts empty.
func Open(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := New(opts...)
	s.storage = storage

	items, err := storage.Load(ctx)
	if err != nil {
		s.reportPersistError("load", err)
		return s
	}
	s.items = items
	return s
}

func (s *Store) AddItem(product storefrontclient.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mutate(func(items []Item) []Item {
		for i := range items {
			if items[i].ProductID == product.ID {
				items[i].Quantity += quantity
				return items
			}
		}
		return append(items, Item{
			ID:        s.newID(product.ID),
			ProductID: product.ID,
			Quantity:  quantity,
			Product:   product,
		})
	})
}

func (s *Store) RemoveItem(productID string) {
	s.mutate(func(items []Item) []Item {
		out := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				out = append(out, it)
			}
		}
		return out
	})
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the item.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mutate(func(items []Item) []Item {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

func (s *Store) ClearCart() {
	s.mutate(func([]Item) []Item { return nil })
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice uses the price captured when each product was added.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Subscribe calls fn with a copy of the items after every mutation, on the
// mutating goroutine.
func (s *Store) Subscribe(fn func([]Item)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) mutate(fn func([]Item) []Item) {
	s.mu.Lock()
	s.items = fn(s.items)
	s.version++
	version := s.version
	snapshot := clone(s.items)
	subs := make([]func([]Item), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if sub, ok := s.subs[i]; ok {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(clone(snapshot))
	}
	s.persist(version, snapshot)
}

// persist writes snapshot unless a newer version already reached storage.
func (s *Store) persist(version uint64, snapshot []Item) {
	if s.storage == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if version <= s.saved {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.reportPersistError("save", err)
		return
	}
	s.saved = version
}

func (s *Store) reportPersistError(op string, err error) {
	s.logger.Warn("cart_persist_error", "op", op, "key", StorageKey, "error", err)
	if s.onPersistError != nil {
		s.onPersistError(fmt.Errorf("cart storage %s: %w", op, err))
	}
}

// newID derives a line id from the product id and the current time in
// milliseconds, bumped so that ids never repeat within a store.
func (s *Store) newID(productID string) string {
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return fmt.Sprintf("%s-%d", productID, ms)
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
