package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestClientAttachesCredential(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(map[string]any{"id": 1})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok123"), nil)
	_, err := c.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsEmptyCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(AuthResponse{JWT: "fresh"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	resp, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Empty(t, gotAuth, "no Authorization header before sign in")
	assert.Equal(t, "fresh", resp.JWT)
}

func TestClientSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	_, err := c.SignUp(context.Background(), RegisterInput{Email: "a@b.c"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "email already registered", UserMessage(err))
}

func TestClientStatusSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := New(srv.URL, staticToken("t"), nil)
		_, err := c.Profile(context.Background())
		srv.Close()

		require.Error(t, err)
		assert.True(t, errors.Is(err, tt.want), "status %d should map to %v", tt.status, tt.want)
	}
	assert.True(t, IsUnauthorized(&Error{Status: http.StatusUnauthorized}))
	assert.False(t, IsUnauthorized(&Error{Status: http.StatusForbidden}))
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, staticToken(""), nil)
	_, err := c.Projects(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Transport)
	assert.False(t, IsUnauthorized(err), "a network failure is not an auth failure")
}

func TestClientEachCallHitsServer(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	for i := 0; i < 3; i++ {
		_, err := c.Requirements(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls, "no caching or coalescing between calls")
}

func TestInviteAndStatusPaths(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.RequestURI())
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	ctx := context.Background()

	require.NoError(t, c.Invite(ctx, 7, "x@y.z"))
	_, err := c.AcceptInvitation(ctx, "tok/with special")
	require.NoError(t, err)
	_, err = c.UpdateRequirementStatus(ctx, 9, "CLOSED")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/projects/invite",
		"GET /api/projects/accept_invitation?token=tok%2Fwith+special",
		"PUT /api/requirements/9/status/CLOSED",
	}, gotPaths)
}
