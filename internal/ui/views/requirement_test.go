package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhruvm/cspace/internal/models"
)

func TestRequirementDetailShowsAssignee(t *testing.T) {
	req := models.Requirement{
		ID:       1,
		Title:    "Implement opening book",
		Status:   models.StatusOpen,
		Priority: models.PriorityHigh,
		Assignee: &models.User{ID: 5, FullName: "Alice Chen"},
	}
	d := NewRequirementDetail(nil, nil, req, false)
	d.SetSize(80, 30)

	out := d.View()
	assert.Contains(t, out, "Assigned to: Alice Chen")
	assert.Contains(t, out, "Expert")
}

func TestRequirementDetailOmitsAssigneeWhenUnset(t *testing.T) {
	req := models.Requirement{
		ID:       2,
		Title:    "Write endgame tests",
		Status:   models.StatusOpen,
		Priority: models.PriorityLow,
	}
	d := NewRequirementDetail(nil, nil, req, false)
	d.SetSize(80, 30)

	assert.NotContains(t, d.View(), "Assigned to:")
}
