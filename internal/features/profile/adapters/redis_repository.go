package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/core/store"
	"crafts-market/internal/features/profile/domain"

	"go.uber.org/zap"
)

// profileSchemaVersion tags persisted profile records so the format can evolve.
const profileSchemaVersion = 1

// profileRecord is the versioned envelope written to the store.
type profileRecord struct {
	SchemaVersion int            `json:"schema_version"`
	Profile       domain.Profile `json:"profile"`
}

// RedisProfileRepository implements ports.ProfileRepository on the key-value store.
type RedisProfileRepository struct {
	store store.Store
}

// NewRedisProfileRepository creates a new RedisProfileRepository.
func NewRedisProfileRepository(s store.Store) *RedisProfileRepository {
	return &RedisProfileRepository{
		store: s,
	}
}

func profileKey(session string) string {
	return "profile:" + session
}

func loggedInKey(session string) string {
	return "profile:" + session + ":logged_in"
}

// Load returns the stored profile for a session, or nil when no record
// exists. An unreadable or unversioned record also yields nil so the
// caller falls back to the default profile; corruption is logged.
func (r *RedisProfileRepository) Load(ctx context.Context, session string) (*domain.Profile, error) {
	data, err := r.store.Get(ctx, profileKey(session))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var record profileRecord
	if err := json.Unmarshal(data, &record); err != nil || record.SchemaVersion != profileSchemaVersion {
		logger.Named("profile").Warn("Discarding unreadable profile record",
			zap.String("session", session),
			zap.Error(err),
		)
		return nil, nil
	}

	return &record.Profile, nil
}

// Save persists the profile for a session.
func (r *RedisProfileRepository) Save(ctx context.Context, session string, profile *domain.Profile) error {
	data, err := json.Marshal(profileRecord{
		SchemaVersion: profileSchemaVersion,
		Profile:       *profile,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.store.Set(ctx, profileKey(session), data, 0); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// SaveLoggedIn persists the login flag for a session.
func (r *RedisProfileRepository) SaveLoggedIn(ctx context.Context, session string, loggedIn bool) error {
	value := "0"
	if loggedIn {
		value = "1"
	}
	if err := r.store.Set(ctx, loggedInKey(session), []byte(value), 0); err != nil {
		return fmt.Errorf("failed to save login flag: %w", err)
	}
	return nil
}

// LoadLoggedIn returns the login flag for a session, false when unset.
func (r *RedisProfileRepository) LoadLoggedIn(ctx context.Context, session string) (bool, error) {
	data, err := r.store.Get(ctx, loggedInKey(session))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load login flag: %w", err)
	}
	return string(data) == "1", nil
}
