package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/core/store"
	"crafts-market/internal/features/checkout/domain"

	"go.uber.org/zap"
)

// orderSchemaVersion tags persisted order records so the format can evolve.
const orderSchemaVersion = 1

// orderRecord is the versioned envelope written to the store.
type orderRecord struct {
	SchemaVersion int          `json:"schema_version"`
	Order         domain.Order `json:"order"`
}

// RedisOrderRepository implements ports.OrderRepository on the key-value store.
type RedisOrderRepository struct {
	store store.Store
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(s store.Store) *RedisOrderRepository {
	return &RedisOrderRepository{
		store: s,
	}
}

func orderKey(session string) string {
	return "order:current:" + session
}

// SaveCurrent persists the latest order snapshot for a session.
func (r *RedisOrderRepository) SaveCurrent(ctx context.Context, session string, order domain.Order) error {
	data, err := json.Marshal(orderRecord{
		SchemaVersion: orderSchemaVersion,
		Order:         order,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Set(ctx, orderKey(session), data, 0); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// LoadCurrent returns the latest order snapshot for a session. A missing,
// unreadable or unversioned record yields domain.ErrNoOrder; corruption is
// logged, never surfaced as a distinct failure.
func (r *RedisOrderRepository) LoadCurrent(ctx context.Context, session string) (*domain.Order, error) {
	data, err := r.store.Get(ctx, orderKey(session))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, domain.ErrNoOrder
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	var record orderRecord
	if err := json.Unmarshal(data, &record); err != nil || record.SchemaVersion != orderSchemaVersion {
		logger.Named("checkout").Warn("Discarding unreadable order record",
			zap.String("session", session),
			zap.Error(err),
		)
		return nil, domain.ErrNoOrder
	}

	return &record.Order, nil
}

// ClearCurrent removes the order snapshot for a session.
func (r *RedisOrderRepository) ClearCurrent(ctx context.Context, session string) error {
	if err := r.store.Delete(ctx, orderKey(session)); err != nil {
		return fmt.Errorf("failed to clear order: %w", err)
	}
	return nil
}
