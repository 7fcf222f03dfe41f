package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/store"
)

// fixture wires a session store against a fake backend.
func fixture(t *testing.T, handler http.Handler) (*Store, *store.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	kv, err := store.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	client := api.New(srv.URL, kv, nil)
	return New(kv, client, nil), kv
}

// backend fakes the auth endpoints: one known user, one valid token.
func backend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["email"] != "alice@example.com" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
			return
		}
		json.NewEncoder(w).Encode(api.AuthResponse{JWT: "valid-token"})
	})
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var in api.RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "alice@example.com", in.Email, "email must arrive normalized")
		assert.Equal(t, "Alice Chen", in.FullName)
		assert.Equal(t, "ROLE_CUSTOMER", in.Role)
		json.NewEncoder(w).Encode(api.AuthResponse{JWT: "valid-token"})
	})
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: 1, FullName: "Alice Chen", Email: "alice@example.com"})
	})
	return mux
}

func TestLoginPersistsTokenAndLoadsIdentity(t *testing.T) {
	s, kv := fixture(t, backend(t))

	user, err := s.Login(context.Background(), "  alice@example.com ", "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, user, s.User())
	assert.Equal(t, "valid-token", kv.Token())
}

func TestLoginRejectedPersistsNothing(t *testing.T) {
	s, kv := fixture(t, backend(t))

	_, err := s.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Nil(t, s.User())
	assert.Empty(t, kv.Token())
}

func TestRegisterNormalizesAndSignsIn(t *testing.T) {
	s, kv := fixture(t, backend(t))

	user, err := s.Register(context.Background(), RegisterInput{
		FullName: "  Alice Chen ",
		Email:    " Alice@Example.COM ",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Chen", user.FullName)
	assert.Equal(t, "valid-token", kv.Token())
}

func TestRestoreWithNoTokenIsNoSession(t *testing.T) {
	s, _ := fixture(t, backend(t))

	user, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRestoreValidTokenDerivesIdentity(t *testing.T) {
	s, kv := fixture(t, backend(t))
	require.NoError(t, kv.Set(store.KeyToken, "valid-token"))

	user, err := s.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice Chen", user.FullName)
}

func TestRestoreRejectedTokenIsDiscarded(t *testing.T) {
	s, kv := fixture(t, backend(t))
	require.NoError(t, kv.Set(store.KeyToken, "stale-token"))

	user, err := s.Restore(context.Background())
	require.NoError(t, err, "a rejected credential is no session, not an error")
	assert.Nil(t, user)
	assert.Empty(t, kv.Token(), "rejected credential must be cleared")
}

func TestRestoreTransportFailureKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	kv, err := store.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer kv.Close()
	require.NoError(t, kv.Set(store.KeyToken, "maybe-valid"))

	s := New(kv, api.New(srv.URL, kv, nil), nil)

	_, err = s.Restore(context.Background())
	require.Error(t, err)
	assert.Equal(t, "maybe-valid", kv.Token(), "an unreachable server must not destroy the credential")
}

func TestLogoutIsIdempotent(t *testing.T) {
	s, kv := fixture(t, backend(t))

	_, err := s.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	s.Logout()
	s.Logout()

	assert.Nil(t, s.User())
	assert.Empty(t, kv.Token())
}

func TestPendingInviteRoundTrip(t *testing.T) {
	s, _ := fixture(t, backend(t))

	require.NoError(t, s.SetPendingInvite("invite-token"))
	assert.Equal(t, "invite-token", s.TakePendingInvite())
	assert.Empty(t, s.TakePendingInvite(), "taking consumes the token")
}
