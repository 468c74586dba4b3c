package service

import (
	"context"
	"fmt"

	"crafts-market/internal/features/profile/domain"
	"crafts-market/internal/features/profile/ports"
)

// ProfileServiceImpl implements ports.ProfileService.
type ProfileServiceImpl struct {
	repo ports.ProfileRepository
}

// NewProfileService creates a new ProfileServiceImpl.
func NewProfileService(repo ports.ProfileRepository) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		repo: repo,
	}
}

// Get returns the session's profile, falling back to the seed account when
// nothing has been saved yet. The fallback is not persisted until the first
// mutation.
func (s *ProfileServiceImpl) Get(ctx context.Context, session string) (*domain.Profile, error) {
	profile, err := s.repo.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if profile == nil {
		return domain.DefaultProfile(), nil
	}
	return profile, nil
}

// mutate loads the profile, applies fn and persists the result. A rejected
// mutation is never saved.
func (s *ProfileServiceImpl) mutate(ctx context.Context, session string, fn func(*domain.Profile) error) (*domain.Profile, error) {
	profile, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session, profile); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return profile, nil
}

// UpdateAccount replaces the account fields. Empty values keep the current ones.
func (s *ProfileServiceImpl) UpdateAccount(ctx context.Context, session, fullName, email, phone string) (*domain.Profile, error) {
	return s.mutate(ctx, session, func(p *domain.Profile) error {
		if fullName != "" {
			p.FullName = fullName
		}
		if email != "" {
			p.Email = email
		}
		if phone != "" {
			p.Phone = phone
		}
		return nil
	})
}

// AddAddress appends a saved address to the profile.
func (s *ProfileServiceImpl) AddAddress(ctx context.Context, session string, addr domain.Address) (*domain.Profile, error) {
	return s.mutate(ctx, session, func(p *domain.Profile) error {
		return p.AddAddress(addr)
	})
}

// RemoveAddress deletes the address at the given position.
func (s *ProfileServiceImpl) RemoveAddress(ctx context.Context, session string, index int) (*domain.Profile, error) {
	return s.mutate(ctx, session, func(p *domain.Profile) error {
		return p.RemoveAddress(index)
	})
}

// AddPaymentMethod saves a card keeping only its last four digits.
func (s *ProfileServiceImpl) AddPaymentMethod(ctx context.Context, session, cardType, cardNumber, expiry string) (*domain.Profile, error) {
	return s.mutate(ctx, session, func(p *domain.Profile) error {
		return p.AddPaymentMethod(cardType, cardNumber, expiry)
	})
}

// RemovePaymentMethod deletes the card at the given position.
func (s *ProfileServiceImpl) RemovePaymentMethod(ctx context.Context, session string, index int) (*domain.Profile, error) {
	return s.mutate(ctx, session, func(p *domain.Profile) error {
		return p.RemovePaymentMethod(index)
	})
}

// Login marks the session as logged in.
func (s *ProfileServiceImpl) Login(ctx context.Context, session string) error {
	if err := s.repo.SaveLoggedIn(ctx, session, true); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// Logout clears the session's login flag.
func (s *ProfileServiceImpl) Logout(ctx context.Context, session string) error {
	if err := s.repo.SaveLoggedIn(ctx, session, false); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether the session is logged in.
func (s *ProfileServiceImpl) IsLoggedIn(ctx context.Context, session string) (bool, error) {
	loggedIn, err := s.repo.LoadLoggedIn(ctx, session)
	if err != nil {
		return false, fmt.Errorf("service: %w", err)
	}
	return loggedIn, nil
}
