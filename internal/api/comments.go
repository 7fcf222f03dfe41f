package api

import (
	"context"
	"fmt"

	"github.com/dhruvm/cspace/internal/models"
)

// Comments lists the thread under a requirement, oldest first as
// returned by the server. The client never re-sorts.
func (c *Client) Comments(ctx context.Context, requirementID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.get(ctx, fmt.Sprintf("/api/comments/%d", requirementID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment appends a comment to a requirement's thread.
func (c *Client) CreateComment(ctx context.Context, requirementID int64, content string) (*models.Comment, error) {
	body := map[string]any{"requirementId": requirementID, "content": content}
	var out models.Comment
	if err := c.post(ctx, "/api/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
