package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/core/store"
	"crafts-market/internal/features/cart/domain"

	"go.uber.org/zap"
)

// cartSchemaVersion tags persisted cart records so the format can evolve.
const cartSchemaVersion = 1

// cartRecord is the versioned envelope written to the store.
type cartRecord struct {
	SchemaVersion int            `json:"schema_version"`
	Entries       []domain.Entry `json:"entries"`
}

// RedisCartRepository implements ports.CartRepository on the key-value store.
type RedisCartRepository struct {
	store store.Store
}

// NewRedisCartRepository creates a new RedisCartRepository.
func NewRedisCartRepository(s store.Store) *RedisCartRepository {
	return &RedisCartRepository{
		store: s,
	}
}

func cartKey(session string) string {
	return "cart:" + session
}

func shippingKey(session string) string {
	return "cart:" + session + ":shipping"
}

// Load retrieves the cart for a session. A missing record, a record that
// fails to decode, or an unknown schema version all yield an empty cart;
// corruption is logged, never surfaced.
func (r *RedisCartRepository) Load(ctx context.Context, session string) (*domain.Cart, error) {
	data, err := r.store.Get(ctx, cartKey(session))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var record cartRecord
	if err := json.Unmarshal(data, &record); err != nil || record.SchemaVersion != cartSchemaVersion {
		logger.Named("cart").Warn("Discarding unreadable cart record",
			zap.String("session", session),
			zap.Error(err),
		)
		return &domain.Cart{}, nil
	}

	return &domain.Cart{Entries: record.Entries}, nil
}

// Save persists the cart for a session.
func (r *RedisCartRepository) Save(ctx context.Context, session string, cart *domain.Cart) error {
	data, err := json.Marshal(cartRecord{
		SchemaVersion: cartSchemaVersion,
		Entries:       cart.Entries,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.store.Set(ctx, cartKey(session), data, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear removes the cart record for a session.
func (r *RedisCartRepository) Clear(ctx context.Context, session string) error {
	if err := r.store.Delete(ctx, cartKey(session)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// SaveShipping persists the last-selected shipping method for a session.
func (r *RedisCartRepository) SaveShipping(ctx context.Context, session, method string) error {
	if err := r.store.Set(ctx, shippingKey(session), []byte(method), 0); err != nil {
		return fmt.Errorf("failed to save shipping selection: %w", err)
	}
	return nil
}

// LoadShipping returns the last-selected shipping method, or "" if none.
func (r *RedisCartRepository) LoadShipping(ctx context.Context, session string) (string, error) {
	data, err := r.store.Get(ctx, shippingKey(session))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load shipping selection: %w", err)
	}
	return string(data), nil
}
