package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"go, tui, charm", []string{"go", "tui", "charm"}},
		{"solo", []string{"solo"}},
		{"  spaced ,  out  ", []string{"spaced", "out"}},
		{"a,,b", []string{"a", "b"}},
		{"", []string{}},
		{" , ,", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTags(tt.in), "input %q", tt.in)
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "go, tui", JoinTags([]string{"go", "tui"}))
	assert.Equal(t, "", JoinTags(nil))
}

func TestSkillLabel(t *testing.T) {
	assert.Equal(t, "Beginner", PriorityLow.SkillLabel())
	assert.Equal(t, "Intermediate", PriorityMedium.SkillLabel())
	assert.Equal(t, "Expert", PriorityHigh.SkillLabel())
	assert.Equal(t, "URGENT", Priority("URGENT").SkillLabel(), "unknown values pass through")
}

// The backend names the comment timestamp createdDateTime but the chat
// message timestamp createdAt; both must decode to non-zero times.
func TestTimestampWireNames(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	var c Comment
	require.NoError(t, json.Unmarshal([]byte(
		`{"id":1,"content":"hi","createdDateTime":"2025-01-02T03:04:05Z"}`), &c))
	assert.Equal(t, want, c.CreatedAt)

	var m Message
	require.NoError(t, json.Unmarshal([]byte(
		`{"id":1,"content":"yo","createdAt":"2025-01-02T03:04:05Z"}`), &m))
	assert.Equal(t, want, m.CreatedAt)
}

func TestOwnedBy(t *testing.T) {
	alice := &User{ID: 1}
	bob := &User{ID: 2}
	p := Project{Owner: alice}

	assert.True(t, p.OwnedBy(alice))
	assert.False(t, p.OwnedBy(bob))
	assert.False(t, p.OwnedBy(nil))
	assert.False(t, Project{}.OwnedBy(alice))
}
