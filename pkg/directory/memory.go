package directory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smartparking/identity/pkg/domain"
)

// Memory is an in-memory user directory. It keeps single-process
// deployments and tests lightweight and intentionally favors clarity over
// performance. The email index is maintained under the same lock as the
// user map, so Create is atomic with respect to duplicate emails.
type Memory struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// FindByEmail retrieves a user by normalized email.
func (d *Memory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := d.users[id]
	return &user, nil
}

// FindByID retrieves a user by id.
func (d *Memory) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// Create inserts a new user and assigns its id.
func (d *Memory) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	u := *user
	u.ID = uuid.New()
	d.users[u.ID] = u
	d.byEmail[u.Email] = u.ID
	return &u, nil
}

// Update applies a partial field merge.
func (d *Memory) Update(_ context.Context, id uuid.UUID, patch UserPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	if patch.GoogleID != nil {
		user.GoogleID = patch.GoogleID
	}
	if patch.ProfilePictureURL != nil {
		user.ProfilePictureURL = patch.ProfilePictureURL
	}
	if patch.EmailVerified != nil {
		user.EmailVerified = *patch.EmailVerified
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.LoginCount != nil {
		user.LoginCount = *patch.LoginCount
	}
	if patch.LastLogin != nil {
		t := *patch.LastLogin
		user.LastLogin = &t
	}
	user.UpdatedAt = time.Now()

	d.users[id] = user
	return nil
}
