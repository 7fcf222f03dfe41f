package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dhruvm/cspace/internal/models"
)

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Projects lists every project.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.get(ctx, "/api/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyProjects lists projects the current user owns or belongs to.
func (c *Client) MyProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.get(ctx, "/api/projects/my-projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Project fetches a single project with its team roster.
func (c *Client) Project(ctx context.Context, id int64) (*models.Project, error) {
	var out models.Project
	if err := c.get(ctx, fmt.Sprintf("/api/projects/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project owned by the current user.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	var out models.Project
	if err := c.post(ctx, "/api/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject edits a project. Owner only; a 403 is expected for others.
func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (*models.Project, error) {
	var out models.Project
	if err := c.put(ctx, fmt.Sprintf("/api/projects/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project. The backend cascades to its
// requirements and messages.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/projects/%d", id))
}

// Invite emails an invitation to join a project. Owner only.
func (c *Client) Invite(ctx context.Context, projectID int64, email string) error {
	body := map[string]any{"email": email, "projectId": projectID}
	return c.post(ctx, "/api/projects/invite", body, nil)
}

// InvitationResult is returned when an invitation token is redeemed.
type InvitationResult struct {
	ProjectID int64  `json:"projectId"`
	Message   string `json:"message"`
}

// AcceptInvitation redeems an invitation token for the current user.
func (c *Client) AcceptInvitation(ctx context.Context, token string) (*InvitationResult, error) {
	var out InvitationResult
	path := "/api/projects/accept_invitation?token=" + url.QueryEscape(token)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
