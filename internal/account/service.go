// Package account implements the account side of the sync layer:
// sign-up, sign-in, current-user resolution, and logout.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/domain"
	"github.com/newskeeper/newskeeper/internal/session"
)

// Store is the persistence surface the service needs: identities and
// the profile documents linked to them.
type Store interface {
	CreateIdentity(ctx context.Context, account domain.Account) (domain.Account, error)
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
	GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*domain.UserProfile, error)
}

// Sessions issues and resolves opaque session tokens.
type Sessions interface {
	Create(ctx context.Context, accountID uuid.UUID) (string, error)
	Account(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	store     Store
	sessions  Sessions
	avatarURL string
}

// Session is what a successful sign-up or sign-in hands back.
type Session struct {
	Token   string
	Profile domain.UserProfile
}

func NewService(store Store, sessions Sessions, avatarBaseURL string) *Service {
	if avatarBaseURL == "" {
		avatarBaseURL = "https://ui-avatars.com/api/"
	}
	return &Service{
		store:     store,
		sessions:  sessions,
		avatarURL: avatarBaseURL,
	}
}

// Create runs the sign-up saga: identity, then session, then profile.
// A failure after the identity write compensates by deleting what was
// already created, so no orphaned identity survives a partial sign-up.
func (s *Service) Create(ctx context.Context, email, password, username string) (*Session, error) {
	if email == "" || password == "" || username == "" {
		return nil, apperr.NewValidation("email, password and username are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity, err := s.store.CreateIdentity(ctx, domain.Account{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, apperr.NewValidationWrap("could not create account", err)
	}

	token, err := s.sessions.Create(ctx, identity.ID)
	if err != nil {
		s.compensate(ctx, identity.ID, "")
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	profile, err := s.store.CreateProfile(ctx, domain.UserProfile{
		AccountID: identity.ID,
		Email:     email,
		Username:  username,
		AvatarURL: s.initialsAvatar(username),
	})
	if err != nil {
		s.compensate(ctx, identity.ID, token)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &Session{Token: token, Profile: profile}, nil
}

func (s *Service) compensate(ctx context.Context, accountID uuid.UUID, token string) {
	if token != "" {
		if err := s.sessions.Delete(ctx, token); err != nil {
			slog.Error("Sign-up compensation: failed to delete session", "error", err)
		}
	}
	if err := s.store.DeleteIdentity(ctx, accountID); err != nil {
		slog.Error("Sign-up compensation: failed to delete identity", "accountId", accountID, "error", err)
	}
}

// Authenticate verifies credentials and starts a session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	identity, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if identity == nil {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}

	profile, err := s.store.GetProfileByAccount(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, apperr.NewUnauthorized("account has no profile")
	}

	token, err := s.sessions.Create(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &Session{Token: token, Profile: *profile}, nil
}

// Current resolves the token to its profile. No session or no matching
// profile yields (nil, nil): "no current user" is a normal state, never
// an error.
func (s *Service) Current(ctx context.Context, token string) (*domain.UserProfile, error) {
	accountID, err := s.sessions.Account(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	profile, err := s.store.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return profile, nil
}

// Logout terminates the session behind the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return apperr.NewUnauthorized("no active session")
		}
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (s *Service) initialsAvatar(username string) string {
	return s.avatarURL + "?name=" + url.QueryEscape(username)
}
