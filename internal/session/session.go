// Package session owns the authenticated identity and its lifecycle.
// The credential token lives in the local store so a restart can
// restore the session; the identity itself is always re-derived from a
// profile lookup, never trusted from disk.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/store"
)

// ErrInvalidCredentials is returned by Login when the server rejects
// the email/password pair, as opposed to a network failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

const defaultRole = "ROLE_CUSTOMER"

// Store tracks the current session.
type Store struct {
	kv     *store.Store
	client *api.Client
	log    *zap.Logger

	user *models.User
}

// New creates a session store over the key-value store and API client.
func New(kv *store.Store, client *api.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, client: client, log: log.Named("session")}
}

// User returns the current identity, or nil when signed out.
func (s *Store) User() *models.User {
	return s.user
}

// Restore validates a persisted credential by fetching the profile.
// A rejected credential is discarded and reported as no session; a
// transport failure keeps the credential and returns the error so the
// caller can retry.
func (s *Store) Restore(ctx context.Context) (*models.User, error) {
	if s.kv.Token() == "" {
		return nil, nil
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.log.Info("persisted credential rejected, clearing")
			s.Logout()
			return nil, nil
		}
		return nil, fmt.Errorf("restore session: %w", err)
	}

	s.user = user
	s.log.Info("session restored", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login exchanges credentials for a token, persists it, and loads the
// identity. Nothing is persisted on failure.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.JWT == "" {
		return nil, ErrInvalidCredentials
	}
	return s.adopt(ctx, resp.JWT)
}

// RegisterInput is the profile a new user signs up with.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// Register normalizes the profile, creates the account, and starts a
// session with the returned token.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = defaultRole
	}
	resp, err := s.client.SignUp(ctx, api.RegisterInput{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Password: in.Password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	if resp.JWT == "" {
		return nil, fmt.Errorf("register: server returned no token")
	}
	return s.adopt(ctx, resp.JWT)
}

// adopt persists a fresh token and derives the identity from it.
func (s *Store) adopt(ctx context.Context, token string) (*models.User, error) {
	if err := s.kv.Set(store.KeyToken, token); err != nil {
		return nil, fmt.Errorf("persist credential: %w", err)
	}
	user, err := s.client.Profile(ctx)
	if err != nil {
		// Half-open session is worse than none.
		s.Logout()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	s.user = user
	s.log.Info("signed in", zap.Int64("user_id", user.ID))
	return user, nil
}

// Logout clears the persisted credential and in-memory identity.
// Idempotent.
func (s *Store) Logout() {
	s.user = nil
	if err := s.kv.Delete(store.KeyToken); err != nil {
		s.log.Warn("clear credential", zap.Error(err))
	}
}

// SetPendingInvite stashes an invitation token so an unauthenticated
// deep link survives the login flow.
func (s *Store) SetPendingInvite(token string) error {
	return s.kv.Set(store.KeyPendingInvite, token)
}

// TakePendingInvite returns and clears the stashed invitation token.
func (s *Store) TakePendingInvite() string {
	token, err := s.kv.Get(store.KeyPendingInvite)
	if err != nil || token == "" {
		return ""
	}
	if err := s.kv.Delete(store.KeyPendingInvite); err != nil {
		s.log.Warn("clear pending invitation", zap.Error(err))
	}
	return token
}
