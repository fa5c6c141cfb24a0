// Package directory provides the user record store consumed by the
// identity service. Implementations own persistence only; all credential
// and policy decisions live in pkg/auth.
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartparking/identity/pkg/domain"
)

// UserPatch is a partial update: only non-nil fields are written.
// UpdatedAt is always bumped by the implementation using the store's own
// clock (NOW() in Postgres, time.Now in memory), never a caller-supplied
// timestamp.
type UserPatch struct {
	GoogleID          *string
	ProfilePictureURL *string
	EmailVerified     *bool
	IsActive          *bool
	LoginCount        *int
	LastLogin         *time.Time
}

// UserDirectory is the record-level contract against the external store.
//
// Create assigns the id and is atomic with respect to the unique-email
// constraint: concurrent creates for the same normalized email resolve to
// exactly one success, the rest fail with domain.ErrDuplicateEmail. Emails
// are expected to be normalized by the caller before any call.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) error
}
