package controller

import (
	"strings"

	"github.com/dhruvm/cspace/internal/models"
)

// FilterAll is the no-constraint value for enum axes.
const FilterAll = "ALL"

// ProjectFilter is the predicate state of the project list. Axes
// compose conjunctively; the zero value matches everything.
type ProjectFilter struct {
	// Query matches case-insensitively against name, description, and
	// owner name.
	Query string
	// Category must match exactly when set.
	Category string
	// Tag matches any tag containing it, case-insensitively.
	Tag string
}

// Active reports whether any axis constrains the view.
func (f ProjectFilter) Active() bool {
	return f.Query != "" || f.Category != "" || f.Tag != ""
}

// Match reports whether the project passes every active axis.
func (f ProjectFilter) Match(p models.Project) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		owner := ""
		if p.Owner != nil {
			owner = p.Owner.FullName
		}
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(owner), q) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		found := false
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Predicate adapts the filter for List.SetPredicate.
func (f ProjectFilter) Predicate() func(models.Project) bool {
	if !f.Active() {
		return nil
	}
	return f.Match
}

// RequirementFilter is the predicate state of the requirement browser.
// Status and Skill use FilterAll for no constraint; Tags matches a
// requirement carrying any of the selected tags.
type RequirementFilter struct {
	Query  string
	Status string
	Skill  string
	Tags   []string
}

// Active reports whether any axis constrains the view.
func (f RequirementFilter) Active() bool {
	return f.Query != "" ||
		(f.Status != "" && f.Status != FilterAll) ||
		(f.Skill != "" && f.Skill != FilterAll) ||
		len(f.Tags) > 0
}

// Match reports whether the requirement passes every active axis.
func (f RequirementFilter) Match(r models.Requirement) bool {
	if f.Status != "" && f.Status != FilterAll && string(r.Status) != f.Status {
		return false
	}
	if f.Skill != "" && f.Skill != FilterAll && string(r.Priority) != f.Skill {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		project := ""
		if r.Project != nil {
			project = r.Project.Name
		}
		if !strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) &&
			!strings.Contains(strings.ToLower(project), q) {
			return false
		}
	}
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			for _, have := range r.Tags {
				if have == want {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ToggleTag adds or removes a tag from the membership axis.
func (f RequirementFilter) ToggleTag(tag string) RequirementFilter {
	for i, t := range f.Tags {
		if t == tag {
			f.Tags = append(append([]string{}, f.Tags[:i]...), f.Tags[i+1:]...)
			return f
		}
	}
	f.Tags = append(append([]string{}, f.Tags...), tag)
	return f
}

// Predicate adapts the filter for List.SetPredicate.
func (f RequirementFilter) Predicate() func(models.Requirement) bool {
	if !f.Active() {
		return nil
	}
	return f.Match
}
