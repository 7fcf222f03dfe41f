package api

import (
	"context"
	"fmt"

	"github.com/dhruvm/cspace/internal/models"
)

// ChatMessages lists a project's chat log in ascending creation order
// as returned by the server.
func (c *Client) ChatMessages(ctx context.Context, projectID int64) ([]models.Message, error) {
	var out []models.Message
	if err := c.get(ctx, fmt.Sprintf("/api/messages/chat/%d", projectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage posts a chat message to a project channel.
func (c *Client) SendMessage(ctx context.Context, projectID, senderID int64, content string) (*models.Message, error) {
	body := map[string]any{
		"projectId": projectID,
		"senderId":  senderID,
		"content":   content,
	}
	var out models.Message
	if err := c.post(ctx, "/api/messages/send", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearChat bulk-deletes every message in a project channel. Owner only
// and irreversible.
func (c *Client) ClearChat(ctx context.Context, projectID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/messages/chat/%d", projectID))
}
