package ports

import (
	"context"

	"crafts-market/internal/features/profile/domain"
)

// ProfileService defines the primary port for profile operations.
// Every mutation persists the profile before returning.
type ProfileService interface {
	Get(ctx context.Context, session string) (*domain.Profile, error)
	UpdateAccount(ctx context.Context, session, fullName, email, phone string) (*domain.Profile, error)
	AddAddress(ctx context.Context, session string, addr domain.Address) (*domain.Profile, error)
	RemoveAddress(ctx context.Context, session string, index int) (*domain.Profile, error)
	AddPaymentMethod(ctx context.Context, session, cardType, cardNumber, expiry string) (*domain.Profile, error)
	RemovePaymentMethod(ctx context.Context, session string, index int) (*domain.Profile, error)
	Login(ctx context.Context, session string) error
	Logout(ctx context.Context, session string) error
	IsLoggedIn(ctx context.Context, session string) (bool, error)
}

// ProfileRepository defines the secondary port for profile persistence.
// Load returns nil without error when no record exists for the session.
type ProfileRepository interface {
	Load(ctx context.Context, session string) (*domain.Profile, error)
	Save(ctx context.Context, session string, profile *domain.Profile) error

	SaveLoggedIn(ctx context.Context, session string, loggedIn bool) error
	LoadLoggedIn(ctx context.Context, session string) (bool, error)
}
