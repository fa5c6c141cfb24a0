package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/smartparking/identity/pkg/domain"
)

const uniqueViolation = "23505"

// DBConfig holds database connection configuration.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewDB opens a Postgres connection pool and verifies connectivity.
func NewDB(cfg DBConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const userColumns = `id, full_name, email, phone_number, password_hash, google_id,
	       profile_picture_url, email_verified, auth_provider, is_active,
	       login_count, created_at, updated_at, last_login`

// Postgres is the Postgres-backed user directory.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres user directory.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// FindByEmail retrieves a user by normalized email.
func (d *Postgres) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return d.scanUser(d.db.QueryRowContext(ctx, query, email))
}

// FindByID retrieves a user by id.
func (d *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return d.scanUser(d.db.QueryRowContext(ctx, query, id))
}

// Create inserts a new user, assigning its id. The unique index on email
// closes the register race: a conflicting insert fails with
// domain.ErrDuplicateEmail.
func (d *Postgres) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u := *user
	u.ID = uuid.New()

	query := `
		INSERT INTO users (id, full_name, email, phone_number, password_hash, google_id,
		                   profile_picture_url, email_verified, auth_provider, is_active,
		                   login_count, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := d.db.ExecContext(ctx, query,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash, u.GoogleID,
		u.ProfilePictureURL, u.EmailVerified, u.AuthProvider, u.IsActive,
		u.LoginCount, u.CreatedAt, u.UpdatedAt, u.LastLogin,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// Update applies a partial field merge. Only the patch's non-nil fields are
// written; updated_at is always bumped.
func (d *Postgres) Update(ctx context.Context, id uuid.UUID, patch UserPatch) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.GoogleID != nil {
		add("google_id", *patch.GoogleID)
	}
	if patch.ProfilePictureURL != nil {
		add("profile_picture_url", *patch.ProfilePictureURL)
	}
	if patch.EmailVerified != nil {
		add("email_verified", *patch.EmailVerified)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.LoginCount != nil {
		add("login_count", *patch.LoginCount)
	}
	if patch.LastLogin != nil {
		add("last_login", *patch.LastLogin)
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $1", strings.Join(sets, ", "))
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (d *Postgres) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PhoneNumber, &user.PasswordHash,
		&user.GoogleID, &user.ProfilePictureURL, &user.EmailVerified, &user.AuthProvider,
		&user.IsActive, &user.LoginCount, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
