package database

import (
	"context"
	"strings"
	"sync"
	"time"

	"tweetboard/internal/model"
)

// MemoryStore is an in-memory, concurrency-safe Store.
type MemoryStore struct {
	mu     sync.RWMutex
	tweets []model.Record
	nextID int64
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(ctx context.Context) ([]model.Record, error) {
	return m.filter(func(model.Record) bool { return true }), nil
}

func (m *MemoryStore) Get(ctx context.Context, id int64) (model.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Record{}, ErrNotFound
	}
	return m.tweets[i], nil
}

func (m *MemoryStore) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rec.ID = m.nextID
	rec.DeletedAt = nil
	m.tweets = append(m.tweets, rec)
	return rec, nil
}

func (m *MemoryStore) Update(ctx context.Context, id int64, author, message string) (model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Record{}, ErrNotFound
	}
	m.tweets[i].Author = author
	m.tweets[i].Message = message
	return m.tweets[i], nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.tweets[i].DeletedAt = &at
	return nil
}

func (m *MemoryStore) ByAuthor(ctx context.Context, author string) ([]model.Record, error) {
	return m.filter(func(r model.Record) bool { return strings.EqualFold(r.Author, author) }), nil
}

func (m *MemoryStore) Search(ctx context.Context, text string) ([]model.Record, error) {
	needle := strings.ToLower(text)
	return m.filter(func(r model.Record) bool {
		return strings.Contains(strings.ToLower(r.Message), needle)
	}), nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	return len(m.filter(func(model.Record) bool { return true })), nil
}

func (m *MemoryStore) Close() error { return nil }

// indexOf returns the position of a live record; callers hold the lock.
func (m *MemoryStore) indexOf(id int64) int {
	for i, r := range m.tweets {
		if r.ID == id && r.DeletedAt == nil {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) filter(keep func(model.Record) bool) []model.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Record{}
	for _, r := range m.tweets {
		if r.DeletedAt == nil && keep(r) {
			out = append(out, r)
		}
	}
	return out
}
