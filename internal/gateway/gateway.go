// Package gateway is the persistence boundary in front of every store. It is the only
// package that talks to storage: stores read and write whole collections through a Gateway,
// and the Gateway serializes them into byte slots held by a Slots backend.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"sporton/internal/apperrors"
)

// Collection names, one independent slot each.
const (
	CollectionProducts     = "products"
	CollectionCategories   = "categories"
	CollectionBanks        = "banks"
	CollectionCart         = "cart"
	CollectionTransactions = "transactions"
)

// Gateway reads and writes whole collections.
// Read into a collection that was never written yields an empty collection, not an error.
// Every failure is returned as *apperrors.StorageError.
type Gateway interface {
	Read(ctx context.Context, collection string, dst any) error
	Write(ctx context.Context, collection string, records any) error
}

// Slots is a durable key/value store of raw byte slots.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SlotGateway implements Gateway over a Slots backend using JSON records.
type SlotGateway struct {
	slots   Slots
	latency time.Duration
}

// Option configures a SlotGateway.
type Option func(*SlotGateway)

// WithLatency delays every call by d, standing in for a network round trip.
func WithLatency(d time.Duration) Option {
	return func(g *SlotGateway) {
		g.latency = d
	}
}

// NewSlotGateway creates a new SlotGateway.
func NewSlotGateway(slots Slots, opts ...Option) *SlotGateway {
	g := &SlotGateway{slots: slots}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Gateway = (*SlotGateway)(nil)

// Read loads collection into dst, which must be a non-nil pointer.
func (g *SlotGateway) Read(ctx context.Context, collection string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return storageErr("read", collection, fmt.Errorf("destination must be a non-nil pointer, got %T", dst))
	}
	if err := g.wait(ctx); err != nil {
		return storageErr("read", collection, err)
	}

	data, ok, err := g.slots.Get(ctx, collection)
	if err != nil {
		return storageErr("read", collection, err)
	}
	if !ok || len(data) == 0 {
		setEmpty(rv.Elem())
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return storageErr("read", collection, fmt.Errorf("failed to decode records: %w", err))
	}
	return nil
}

// Write replaces collection with records.
func (g *SlotGateway) Write(ctx context.Context, collection string, records any) error {
	if err := g.wait(ctx); err != nil {
		return storageErr("write", collection, err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return storageErr("write", collection, fmt.Errorf("failed to encode records: %w", err))
	}
	if err := g.slots.Put(ctx, collection, data); err != nil {
		return storageErr("write", collection, err)
	}
	return nil
}

func (g *SlotGateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// setEmpty resets v to an empty, non-nil slice or map, or to its zero value otherwise.
func setEmpty(v reflect.Value) {
	switch v.Kind() {
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	case reflect.Map:
		v.Set(reflect.MakeMap(v.Type()))
	default:
		v.Set(reflect.Zero(v.Type()))
	}
}

func storageErr(op, collection string, err error) error {
	var se *apperrors.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &apperrors.StorageError{Op: op, Collection: collection, Err: err}
}

// Reset drops the shopper-facing collections: the cart and every transaction.
// Catalog and bank data are left alone.
func Reset(ctx context.Context, gw Gateway) error {
	for _, collection := range []string{CollectionCart, CollectionTransactions} {
		if err := gw.Write(ctx, collection, []struct{}{}); err != nil {
			return err
		}
	}
	return nil
}
