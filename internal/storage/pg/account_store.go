package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newskeeper/newskeeper/internal/domain"
)

// AccountStore persists identity records and the user profile documents
// linked to them.
type AccountStore struct {
	db *pgxpool.Pool
}

func NewAccountStore(pool *ConnectionPool) *AccountStore {
	return &AccountStore{db: pool.conn}
}

func (s *AccountStore) CreateIdentity(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	cmd := `
        INSERT INTO accounts (id, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd, account.ID, account.Email, account.PasswordHash, account.CreatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, fmt.Errorf("email already registered: %w", err)
		}
		return domain.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}
	account.ID = id

	return account, nil
}

// DeleteIdentity is the compensation step of the sign-up saga: it removes
// an identity whose profile write failed so no orphaned account survives.
func (s *AccountStore) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM accounts
        WHERE email = $1
    `
	var a domain.Account
	err := s.db.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query account by email: %w", err)
	}

	return &a, nil
}

func (s *AccountStore) CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	cmd := `
        INSERT INTO user_profiles (id, account_id, email, username, avatar_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd, profile.ID, profile.AccountID, profile.Email, profile.Username, profile.AvatarURL, profile.CreatedAt).Scan(&id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to insert user profile: %w", err)
	}
	profile.ID = id

	return profile, nil
}

// GetProfileByAccount returns nil without an error when no profile
// matches: callers treat a missing profile as "no current user".
func (s *AccountStore) GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*domain.UserProfile, error) {
	query := `
        SELECT id, account_id, email, username, avatar_url, created_at
        FROM user_profiles
        WHERE account_id = $1
    `
	var p domain.UserProfile
	err := s.db.QueryRow(ctx, query, accountID).Scan(&p.ID, &p.AccountID, &p.Email, &p.Username, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	return &p, nil
}
