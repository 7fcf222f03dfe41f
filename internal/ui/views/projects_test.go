package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/session"
)

type anonToken struct{}

func (anonToken) Token() string { return "test-token" }

// projectServer serves one page of projects per call, so a test can
// distinguish an early fetch from a later one.
func projectServer(t *testing.T, pages ...[]models.Project) *httptest.Server {
	t.Helper()
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/projects", r.URL.Path)
		page := pages[min(call, len(pages)-1)]
		call++
		json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestView(t *testing.T, srv *httptest.Server) *ProjectListView {
	t.Helper()
	client := api.New(srv.URL, anonToken{}, nil)
	v := NewProjectListView(client, session.New(nil, client, nil))

	m, _ := v.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m.(*ProjectListView)
}

// drive executes a command and feeds its message back, like the runtime
// would.
func drive(t *testing.T, v *ProjectListView, cmd tea.Cmd) *ProjectListView {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ := v.Update(cmd())
	return m.(*ProjectListView)
}

func keyPress(v *ProjectListView, r rune) (*ProjectListView, tea.Cmd) {
	m, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m.(*ProjectListView), cmd
}

func TestProjectListLoadsAndRenders(t *testing.T) {
	srv := projectServer(t, []models.Project{
		{ID: 1, Name: "Chess Engine", Category: "game-development"},
		{ID: 2, Name: "Budget App", Category: "mobile"},
	})
	v := newTestView(t, srv)
	v = drive(t, v, v.Init())

	out := v.View()
	assert.Contains(t, out, "Chess Engine")
	assert.Contains(t, out, "Budget App")
	assert.Contains(t, out, "Showing 2 of 2")
}

func TestProjectListStaleRefreshDiscarded(t *testing.T) {
	srv := projectServer(t,
		[]models.Project{{ID: 1, Name: "Early Result"}},
		[]models.Project{{ID: 2, Name: "Later Result"}},
	)
	v := newTestView(t, srv)

	firstCmd := v.Init()
	v, secondCmd := keyPress(v, 'r')

	// The newer fetch lands first; the older one arrives late and must
	// not overwrite it.
	lateMsg := firstCmd()
	v = drive(t, v, secondCmd)
	m, _ := v.Update(lateMsg)
	v = m.(*ProjectListView)

	out := v.View()
	assert.NotContains(t, out, "Early Result")
	assert.Contains(t, out, "Later Result")
}

func TestProjectListFilterIsLocalAndDistinguishesEmpty(t *testing.T) {
	srv := projectServer(t, []models.Project{
		{ID: 1, Name: "Chess Engine"},
		{ID: 2, Name: "Budget App"},
	})
	v := newTestView(t, srv)
	v = drive(t, v, v.Init())

	v, _ = keyPress(v, '/')
	for _, r := range "chess" {
		v, _ = keyPress(v, r)
	}
	out := v.View()
	assert.Contains(t, out, "Chess Engine")
	assert.NotContains(t, out, "Budget App")
	assert.Contains(t, out, "Showing 1 of 2", "raw collection stays intact under filtering")

	for _, r := range "zzz" {
		v, _ = keyPress(v, r)
	}
	assert.Contains(t, v.View(), "No projects match", "fully filtered is not the same as empty")
}

// crudServer keeps projects in memory so a create shows up on the next
// list fetch, like the real backend.
func crudServer(t *testing.T) *httptest.Server {
	t.Helper()
	var projects []models.Project
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/projects", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(projects)
		case http.MethodPost:
			var in api.ProjectInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			p := models.Project{
				ID:          int64(len(projects) + 1),
				Name:        in.Name,
				Description: in.Description,
				Category:    in.Category,
				Tags:        in.Tags,
			}
			projects = append(projects, p)
			json.NewEncoder(w).Encode(p)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func typeInto(v *ProjectListView, text string) *ProjectListView {
	for _, r := range text {
		v, _ = keyPress(v, r)
	}
	return v
}

func TestCreateProjectRefreshReflectsMutation(t *testing.T) {
	srv := crudServer(t)
	v := newTestView(t, srv)
	v = drive(t, v, v.Init())
	require.Contains(t, v.View(), "No projects yet")

	// Fill the create form: name, description, then skip category to tags.
	v, _ = keyPress(v, 'n')
	v = typeInto(v, "Chess Engine")
	m, _ := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = m.(*ProjectListView)
	v = typeInto(v, "minimax with pruning")
	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = m.(*ProjectListView)
	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = m.(*ProjectListView)
	v = typeInto(v, "x, y")

	m, saveCmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	v = m.(*ProjectListView)
	require.NotNil(t, saveCmd)

	// The save lands, then the view refetches instead of patching locally.
	m, refreshCmd := v.Update(saveCmd())
	v = m.(*ProjectListView)
	require.NotNil(t, refreshCmd, "a successful write must refetch the collection")
	v = drive(t, v, refreshCmd)

	raw := v.list.Raw()
	require.Len(t, raw, 1)
	assert.Equal(t, "Chess Engine", raw[0].Name)
	assert.Equal(t, []string{"x", "y"}, raw[0].Tags, "comma-separated input arrives as a clean tag list")
	assert.Contains(t, v.View(), "Chess Engine")
}

func TestProjectListEmptyCollection(t *testing.T) {
	srv := projectServer(t, []models.Project{})
	v := newTestView(t, srv)
	v = drive(t, v, v.Init())

	assert.Contains(t, v.View(), "No projects yet")
}
