package repositories

import (
	"context"
	"sync"

	"sporton/internal/apperrors"
	"sporton/internal/gateway"

	"github.com/google/uuid"
)

// collection reads and writes one whole collection through the gateway.
// mutate holds mu across read, change and write so a read-modify-write is one unit
// for this process. Writers in other processes are last-writer-wins per collection.
type collection[T any] struct {
	gw   gateway.Gateway
	name string
	mu   sync.Mutex
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	var records []T
	if err := c.gw.Read(ctx, c.name, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.all(ctx)
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return c.gw.Write(ctx, c.name, records)
}

// entities is a collection of records with a string identity.
type entities[T any] struct {
	collection[T]
	entity string
	id     func(*T) *string
}

func newEntities[T any](gw gateway.Gateway, name, entity string, id func(*T) *string) *entities[T] {
	return &entities[T]{
		collection: collection[T]{gw: gw, name: name},
		entity:     entity,
		id:         id,
	}
}

func (e *entities[T]) indexOf(records []T, id string) int {
	for i := range records {
		if *e.id(&records[i]) == id {
			return i
		}
	}
	return -1
}

func (e *entities[T]) getByID(ctx context.Context, id string) (*T, error) {
	records, err := e.all(ctx)
	if err != nil {
		return nil, err
	}
	i := e.indexOf(records, id)
	if i < 0 {
		return nil, apperrors.NewNotFound(e.entity, id)
	}
	return &records[i], nil
}

// create appends record, generating an ID when it has none.
func (e *entities[T]) create(ctx context.Context, record *T) error {
	return e.mutate(ctx, func(records []T) ([]T, error) {
		id := e.id(record)
		if *id == "" {
			*id = uuid.New().String()
		} else if e.indexOf(records, *id) >= 0 {
			return nil, apperrors.NewValidationError("id", "already_exists")
		}
		return append(records, *record), nil
	})
}

// update replaces the stored record with the same ID.
func (e *entities[T]) update(ctx context.Context, record *T) error {
	return e.mutate(ctx, func(records []T) ([]T, error) {
		i := e.indexOf(records, *e.id(record))
		if i < 0 {
			return nil, apperrors.NewNotFound(e.entity, *e.id(record))
		}
		records[i] = *record
		return records, nil
	})
}

// delete removes the record and returns it.
func (e *entities[T]) delete(ctx context.Context, id string) (*T, error) {
	var removed T
	err := e.mutate(ctx, func(records []T) ([]T, error) {
		i := e.indexOf(records, id)
		if i < 0 {
			return nil, apperrors.NewNotFound(e.entity, id)
		}
		removed = records[i]
		return append(records[:i], records[i+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
