package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvm/cspace/internal/models"
)

func sampleProjects() []models.Project {
	alice := &models.User{ID: 1, FullName: "Alice Chen"}
	bob := &models.User{ID: 2, FullName: "Bob Marsh"}
	return []models.Project{
		{ID: 1, Name: "Chess Engine", Description: "minimax with pruning", Category: "game-development", Tags: []string{"go", "ai"}, Owner: alice},
		{ID: 2, Name: "Budget App", Description: "track spending", Category: "mobile", Tags: []string{"flutter"}, Owner: bob},
		{ID: 3, Name: "Portfolio Site", Description: "personal website", Category: "frontend", Tags: []string{"react", "css"}, Owner: alice},
	}
}

func TestProjectFilterAxesCompose(t *testing.T) {
	projects := sampleProjects()

	tests := []struct {
		name   string
		filter ProjectFilter
		want   []int64
	}{
		{"zero value matches all", ProjectFilter{}, []int64{1, 2, 3}},
		{"query on name", ProjectFilter{Query: "chess"}, []int64{1}},
		{"query on description", ProjectFilter{Query: "website"}, []int64{3}},
		{"query on owner", ProjectFilter{Query: "alice"}, []int64{1, 3}},
		{"category exact", ProjectFilter{Category: "mobile"}, []int64{2}},
		{"tag substring", ProjectFilter{Tag: "re"}, []int64{3}},
		{"axes conjoin", ProjectFilter{Query: "alice", Category: "frontend"}, []int64{3}},
		{"conjunction can exclude everything", ProjectFilter{Query: "chess", Category: "mobile"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for _, p := range projects {
				if tt.filter.Match(p) {
					got = append(got, p.ID)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectFilterPredicateNilWhenInactive(t *testing.T) {
	assert.Nil(t, ProjectFilter{}.Predicate())
	assert.NotNil(t, ProjectFilter{Query: "x"}.Predicate())
}

func sampleRequirements() []models.Requirement {
	chess := &models.Project{ID: 1, Name: "Chess Engine"}
	budget := &models.Project{ID: 2, Name: "Budget App"}
	return []models.Requirement{
		{ID: 1, Title: "Implement opening book", Status: models.StatusOpen, Priority: models.PriorityHigh, Tags: []string{"go", "ai"}, Project: chess},
		{ID: 2, Title: "Fix login crash", Status: models.StatusClosed, Priority: models.PriorityMedium, Tags: []string{"flutter"}, Project: budget},
		{ID: 3, Title: "Write endgame tests", Status: models.StatusOpen, Priority: models.PriorityLow, Tags: []string{"go"}, Project: chess},
	}
}

func TestRequirementFilterAxes(t *testing.T) {
	reqs := sampleRequirements()

	tests := []struct {
		name   string
		filter RequirementFilter
		want   []int64
	}{
		{"ALL sentinels match everything", RequirementFilter{Status: FilterAll, Skill: FilterAll}, []int64{1, 2, 3}},
		{"status axis", RequirementFilter{Status: string(models.StatusOpen)}, []int64{1, 3}},
		{"skill axis", RequirementFilter{Skill: string(models.PriorityHigh)}, []int64{1}},
		{"query matches project name", RequirementFilter{Query: "budget"}, []int64{2}},
		{"tags are any-of", RequirementFilter{Tags: []string{"ai", "flutter"}}, []int64{1, 2}},
		{"open high", RequirementFilter{Status: string(models.StatusOpen), Skill: string(models.PriorityHigh)}, []int64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for _, r := range reqs {
				if tt.filter.Match(r) {
					got = append(got, r.ID)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirementFilterToggleTag(t *testing.T) {
	f := RequirementFilter{}

	f = f.ToggleTag("go")
	require.Equal(t, []string{"go"}, f.Tags)

	f = f.ToggleTag("ai")
	require.Equal(t, []string{"go", "ai"}, f.Tags)

	f = f.ToggleTag("go")
	assert.Equal(t, []string{"ai"}, f.Tags)
}

func TestNarrowingFilterShrinksView(t *testing.T) {
	l := NewList[models.Requirement]()
	gen := l.Begin()
	require.True(t, l.Complete(gen, sampleRequirements(), nil))

	l.SetPredicate(RequirementFilter{Status: string(models.StatusOpen)}.Predicate())
	open := l.Len()

	l.SetPredicate(RequirementFilter{
		Status: string(models.StatusOpen),
		Skill:  string(models.PriorityHigh),
	}.Predicate())

	assert.LessOrEqual(t, l.Len(), open, "adding a constraint can only narrow the view")
	assert.Equal(t, 1, l.Len())
}
