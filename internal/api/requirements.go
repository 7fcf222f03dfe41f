package api

import (
	"context"
	"fmt"

	"github.com/dhruvm/cspace/internal/models"
)

// RequirementInput is the create/update payload for a requirement.
type RequirementInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Priority    models.Priority `json:"priority"`
	DueDate     string          `json:"dueDate,omitempty"`
	ProjectID   int64           `json:"projectId"`
}

// Requirements lists every requirement across all projects.
func (c *Client) Requirements(ctx context.Context) ([]models.Requirement, error) {
	var out []models.Requirement
	if err := c.get(ctx, "/api/requirements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectRequirements lists requirements posted under one project.
func (c *Client) ProjectRequirements(ctx context.Context, projectID int64) ([]models.Requirement, error) {
	var out []models.Requirement
	if err := c.get(ctx, fmt.Sprintf("/api/requirements/project/%d", projectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequirement posts a requirement. Project owner only.
func (c *Client) CreateRequirement(ctx context.Context, in RequirementInput) (*models.Requirement, error) {
	var out models.Requirement
	if err := c.post(ctx, "/api/requirements", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequirementStatus flips a requirement between OPEN and CLOSED.
// Project owner only.
func (c *Client) UpdateRequirementStatus(ctx context.Context, id int64, status models.Status) (*models.Requirement, error) {
	var out models.Requirement
	path := fmt.Sprintf("/api/requirements/%d/status/%s", id, status)
	if err := c.put(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequirement removes a requirement. Project owner only.
func (c *Client) DeleteRequirement(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/requirements/%d", id))
}
