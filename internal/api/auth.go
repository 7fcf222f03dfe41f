package api

import (
	"context"

	"github.com/dhruvm/cspace/internal/models"
)

// AuthResponse is returned by the signin and signup endpoints.
type AuthResponse struct {
	JWT     string `json:"jwt"`
	Message string `json:"message"`
}

// SignIn exchanges credentials for a token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.post(ctx, "/auth/signin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignUp creates an account and returns a token.
func (c *Client) SignUp(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the identity behind the current credential.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/api/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
