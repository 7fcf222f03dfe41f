package models

import (
	"strings"
	"time"
)

// User is an authenticated identity as returned by /api/users/profile.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Priority doubles as the skill level of a requirement.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// SkillLabel returns the user-facing skill level for a priority.
func (p Priority) SkillLabel() string {
	switch p {
	case PriorityLow:
		return "Beginner"
	case PriorityMedium:
		return "Intermediate"
	case PriorityHigh:
		return "Expert"
	}
	return string(p)
}

// Status of a requirement.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Categories is the fixed set of project categories the backend accepts.
var Categories = []string{
	"fullstack",
	"frontend",
	"backend",
	"mobile",
	"devops",
	"data-science",
	"machine-learning",
	"web-development",
	"desktop",
	"game-development",
	"other",
}

// Project is a collaboration project with an owner and a team roster.
type Project struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Owner       *User    `json:"owner"`
	Team        []User   `json:"team"`
}

// OwnedBy reports whether the given user owns the project.
func (p Project) OwnedBy(u *User) bool {
	return u != nil && p.Owner != nil && p.Owner.ID == u.ID
}

// Requirement is a task posted under a project with a skill-leveled priority.
type Requirement struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	Project     *Project   `json:"project"`
	Assignee    *User      `json:"assignee"`
}

// Comment on a requirement. Append-only. The backend serializes the
// comment timestamp as createdDateTime, unlike chat messages.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    *User     `json:"user"`
	CreatedAt time.Time `json:"createdDateTime"`
}

// Message in a project chat. Append-only per message.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Sender    *User     `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

// SplitTags turns a comma-separated tag string into a clean slice,
// preserving entry order and dropping empties.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags, used to prefill edit forms.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
