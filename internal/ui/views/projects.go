package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/controller"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/session"
	"github.com/dhruvm/cspace/internal/ui/keys"
	"github.com/dhruvm/cspace/internal/ui/styles"
)

// FocusArea marks which part of the list screen has focus.
type FocusArea int

const (
	FocusList FocusArea = iota
	FocusSearch
	FocusTag
)

type projectScope int

const (
	scopeAll projectScope = iota
	scopeMine
)

// ProjectListView shows all projects or the user's own, filtered by
// search text, category, and tag.
type ProjectListView struct {
	client  *api.Client
	session *session.Store
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	list   *controller.List[models.Project]
	filter controller.ProjectFilter
	scope  projectScope

	focus       FocusArea
	cursor      int
	scrollY     int
	searchInput textinput.Model
	tagInput    textinput.Model

	categoryOpen   bool
	categoryCursor int

	editing   bool
	editingID int64 // 0 when creating
	formName  textinput.Model
	formDesc  textarea.Model
	formTags  textinput.Model
	formCat   int
	formFocus int // 0=name, 1=desc, 2=category, 3=tags, 4=save
	formErr   string

	confirmingDelete bool
	deleteTarget     models.Project

	statusText string
	errText    string
}

// NewProjectListView creates the project list screen.
func NewProjectListView(client *api.Client, sess *session.Store) *ProjectListView {
	search := textinput.New()
	search.Placeholder = "Search projects..."
	search.CharLimit = 100

	tag := textinput.New()
	tag.Placeholder = "Tag..."
	tag.CharLimit = 50

	formName := textinput.New()
	formName.Placeholder = "Project name"
	formName.CharLimit = 100

	formDesc := textarea.New()
	formDesc.Placeholder = "Description"
	formDesc.CharLimit = 1000
	formDesc.SetWidth(50)
	formDesc.SetHeight(3)
	formDesc.ShowLineNumbers = false

	formTags := textinput.New()
	formTags.Placeholder = "Tags (comma separated, optional)"
	formTags.CharLimit = 200

	return &ProjectListView{
		client:      client,
		session:     sess,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		list:        controller.NewList[models.Project](),
		focus:       FocusList,
		searchInput: search,
		tagInput:    tag,
		formName:    formName,
		formDesc:    formDesc,
		formTags:    formTags,
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.refresh()
}

type projectsLoadedMsg struct {
	gen   int
	items []models.Project
	err   error
}

type projectSavedMsg struct {
	err error
}

type projectDeletedMsg struct {
	err error
}

// refresh fetches the collection for the current scope and replaces the
// raw items wholesale when it lands.
func (v *ProjectListView) refresh() tea.Cmd {
	gen := v.list.Begin()
	scope := v.scope
	return func() tea.Msg {
		var items []models.Project
		var err error
		if scope == scopeMine {
			items, err = v.client.MyProjects(context.Background())
		} else {
			items, err = v.client.Projects(context.Background())
		}
		return projectsLoadedMsg{gen: gen, items: items, err: err}
	}
}

// applyFilter recomputes the derived view from the raw items. Purely
// local; no network call.
func (v *ProjectListView) applyFilter() {
	v.list.SetPredicate(v.filter.Predicate())
	if v.cursor >= v.list.Len() {
		v.cursor = max(0, v.list.Len()-1)
	}
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.formDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case projectsLoadedMsg:
		if !v.list.Complete(msg.gen, msg.items, msg.err) {
			return v, nil
		}
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return v, func() tea.Msg { return SessionExpired{} }
			}
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.errText = ""
		v.applyFilter()
		return v, nil

	case projectSavedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return v, func() tea.Msg { return SessionExpired{} }
			}
			v.formErr = api.UserMessage(msg.err)
			return v, nil
		}
		v.editing = false
		v.statusText = "Project saved"
		return v, v.refresh()

	case projectDeletedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return v, func() tea.Msg { return SessionExpired{} }
			}
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.statusText = "Project deleted"
		return v, v.refresh()

	case tea.KeyMsg:
		v.statusText = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateForm(msg)
		}
		if v.categoryOpen {
			return v.updateCategoryDropdown(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *ProjectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing into filter inputs recomputes the view synchronously.
	if v.focus == FocusSearch || v.focus == FocusTag {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.tagInput.Blur()
			v.focus = FocusList
			return v, nil
		default:
			var cmd tea.Cmd
			if v.focus == FocusSearch {
				v.searchInput, cmd = v.searchInput.Update(msg)
				v.filter.Query = v.searchInput.Value()
			} else {
				v.tagInput, cmd = v.tagInput.Update(msg)
				v.filter.Tag = v.tagInput.Value()
			}
			v.applyFilter()
			return v, cmd
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < v.list.Len()-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		items := v.list.Items()
		if v.cursor < len(items) {
			project := items[v.cursor]
			return v, func() tea.Msg {
				return SelectedProject{Project: project}
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startForm(nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		items := v.list.Items()
		if v.cursor < len(items) && items[v.cursor].OwnedBy(v.session.User()) {
			p := items[v.cursor]
			v.startForm(&p)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		items := v.list.Items()
		if v.cursor < len(items) && items[v.cursor].OwnedBy(v.session.User()) {
			v.confirmingDelete = true
			v.deleteTarget = items[v.cursor]
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearch
		v.searchInput.Focus()
		return v, textinput.Blink

	case msg.String() == "t":
		v.focus = FocusTag
		v.tagInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.categoryOpen = true
		v.categoryCursor = 0
		return v, nil

	case msg.String() == "c":
		// Clear every filter axis.
		v.filter = controller.ProjectFilter{}
		v.searchInput.Reset()
		v.tagInput.Reset()
		v.applyFilter()
		return v, nil

	case key.Matches(msg, v.keys.Scope):
		if v.scope == scopeAll {
			v.scope = scopeMine
		} else {
			v.scope = scopeAll
		}
		v.cursor = 0
		v.scrollY = 0
		return v, v.refresh()

	case key.Matches(msg, v.keys.Refresh):
		return v, v.refresh()

	case key.Matches(msg, v.keys.Browse):
		return v, func() tea.Msg { return OpenBrowse{} }

	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg { return LoggedOut{} }
	}

	return v, nil
}

func (v *ProjectListView) updateCategoryDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.categoryOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.categoryCursor > 0 {
			v.categoryCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.categoryCursor < len(models.Categories) { // +1 for "All"
			v.categoryCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.categoryCursor == 0 {
			v.filter.Category = ""
		} else {
			v.filter.Category = models.Categories[v.categoryCursor-1]
		}
		v.categoryOpen = false
		v.applyFilter()
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTarget.ID
		return v, func() tea.Msg {
			return projectDeletedMsg{err: v.client.DeleteProject(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) startForm(p *models.Project) {
	v.editing = true
	v.formFocus = 0
	v.formErr = ""
	if p == nil {
		v.editingID = 0
		v.formName.Reset()
		v.formDesc.Reset()
		v.formTags.Reset()
		v.formCat = 0
	} else {
		v.editingID = p.ID
		v.formName.SetValue(p.Name)
		v.formDesc.SetValue(p.Description)
		v.formTags.SetValue(models.JoinTags(p.Tags))
		v.formCat = 0
		for i, c := range models.Categories {
			if c == p.Category {
				v.formCat = i
				break
			}
		}
	}
	v.updateFormFocus()
}

func (v *ProjectListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveProject()

	case key.Matches(msg, v.keys.Tab):
		v.formFocus = (v.formFocus + 1) % 5
		v.updateFormFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.formFocus = (v.formFocus + 4) % 5
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.formFocus == 2 && v.formCat > 0 {
			v.formCat--
			return v, nil
		}

	case key.Matches(msg, v.keys.Down):
		if v.formFocus == 2 && v.formCat < len(models.Categories)-1 {
			v.formCat++
			return v, nil
		}

	case key.Matches(msg, v.keys.Enter):
		switch v.formFocus {
		case 0, 2, 3:
			v.formFocus++
			v.updateFormFocus()
			return v, nil
		case 4:
			return v, v.saveProject()
		}
		// Description textarea keeps enter for newlines.
	}

	var cmd tea.Cmd
	switch v.formFocus {
	case 0:
		v.formName, cmd = v.formName.Update(msg)
	case 1:
		v.formDesc, cmd = v.formDesc.Update(msg)
	case 3:
		v.formTags, cmd = v.formTags.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) updateFormFocus() {
	v.formName.Blur()
	v.formDesc.Blur()
	v.formTags.Blur()
	switch v.formFocus {
	case 0:
		v.formName.Focus()
	case 1:
		v.formDesc.Focus()
	case 3:
		v.formTags.Focus()
	}
}

func (v *ProjectListView) saveProject() tea.Cmd {
	name := strings.TrimSpace(v.formName.Value())
	desc := strings.TrimSpace(v.formDesc.Value())
	if name == "" {
		v.formErr = "Name is required"
		return nil
	}
	if desc == "" {
		v.formErr = "Description is required"
		return nil
	}

	in := api.ProjectInput{
		Name:        name,
		Description: desc,
		Category:    models.Categories[v.formCat],
		Tags:        models.SplitTags(v.formTags.Value()),
	}
	id := v.editingID
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = v.client.CreateProject(context.Background(), in)
		} else {
			_, err = v.client.UpdateProject(context.Background(), id, in)
		}
		return projectSavedMsg{err: err}
	}
}

func (v *ProjectListView) ensureVisible() {
	// Each item renders as 2 lines + 1 margin.
	availableHeight := max(v.height-10, 3)
	visibleItems := max(availableHeight/3, 1)

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *ProjectListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title := "All Projects"
	if v.scope == scopeMine {
		title = "My Projects"
	}

	searchStyle := s.Input
	if v.focus == FocusSearch {
		searchStyle = s.InputFocused
	}
	tagStyle := s.Input
	if v.focus == FocusTag {
		tagStyle = s.InputFocused
	}
	searchBox := searchStyle.Width(clamp(contentWidth/3, 12, 30)).Render(v.searchInput.View())
	tagBox := tagStyle.Width(clamp(contentWidth/5, 8, 16)).Render(v.tagInput.View())

	catLabel := "All"
	if v.filter.Category != "" {
		catLabel = v.filter.Category
	}
	catBtn := s.Button.Render("Category: " + catLabel + " ▼")

	header := lipgloss.JoinHorizontal(lipgloss.Center, searchBox, " ", tagBox, " ", catBtn)
	if v.categoryOpen {
		header += "\n" + v.renderCategoryDropdown()
	}

	lines := []string{s.Title.Render(title), header}
	if v.errText != "" {
		lines = append(lines, s.ErrorText.Render(v.errText))
	}
	if v.statusText != "" {
		lines = append(lines, s.SuccessText.Render(v.statusText))
	}
	if v.list.Loaded() {
		lines = append(lines, s.TitleMuted.Render(
			fmt.Sprintf("Showing %d of %d projects", v.list.Len(), v.list.RawLen())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *ProjectListView) renderCategoryDropdown() string {
	s := v.styles
	items := make([]string, 0, len(models.Categories)+1)

	style := func(i int) lipgloss.Style {
		if v.categoryCursor == i {
			return s.ListSelected
		}
		return s.ListItem
	}
	items = append(items, style(0).Render("All"))
	for i, c := range models.Categories {
		items = append(items, style(i+1).Render(c))
	}
	return s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *ProjectListView) renderList() string {
	s := v.styles

	if !v.list.Loaded() {
		if v.list.Status() == controller.StatusError {
			return s.TitleMuted.Render("Could not load projects. Press 'r' to retry.")
		}
		return s.TitleMuted.Render("Loading...")
	}

	// A genuinely empty collection and one fully excluded by the filter
	// call for different user actions.
	if v.list.EmptyRaw() {
		if v.scope == scopeMine {
			return s.TitleMuted.Render("You have no projects yet. Press 'n' to create one.")
		}
		return s.TitleMuted.Render("No projects yet. Press 'n' to create the first one.")
	}
	if v.list.EmptyFiltered() {
		return s.TitleMuted.Render("No projects match the current filters. Press 'c' to clear them.")
	}

	availableHeight := max(v.height-12, 3)
	visibleItems := max(availableHeight/3, 1)

	items := v.list.Items()
	endIdx := min(v.scrollY+visibleItems, len(items))

	var rows []string
	for i := v.scrollY; i < endIdx; i++ {
		rows = append(rows, v.renderItem(items[i], i == v.cursor && v.focus == FocusList))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectListView) renderItem(p models.Project, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	titleLine := p.Name
	if p.Owner != nil {
		titleLine += s.TitleMuted.Render("  by " + p.Owner.FullName)
	}

	meta := p.Category
	if len(p.Tags) > 0 {
		meta += "  " + s.BadgeSkill.Render(models.JoinTags(p.Tags))
	}
	if p.OwnedBy(v.session.User()) {
		meta += "  " + s.Badge.Render("owner")
	}

	var titleStyle, metaStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		metaStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		metaStyle = s.ListItem.Width(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		metaStyle.Render(meta),
	) + "\n"
}

func (v *ProjectListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Project"
	if v.editingID != 0 {
		formTitle = "Edit Project"
	}

	nameStyle := s.Input
	descStyle := s.Input
	catStyle := s.Input
	tagsStyle := s.Input
	btnStyle := s.Button
	switch v.formFocus {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		catStyle = s.InputFocused
	case 3:
		tagsStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	rows := []string{s.Title.Render(formTitle), ""}
	if v.formErr != "" {
		rows = append(rows, s.ErrorText.Render(v.formErr), "")
	}
	rows = append(rows,
		"Name:",
		nameStyle.Width(inputWidth).Render(v.formName.View()),
		"",
		"Description:",
		descStyle.Render(v.formDesc.View()),
		"",
		"Category (↑↓):",
		catStyle.Width(inputWidth).Render(models.Categories[v.formCat]),
		"",
		"Tags:",
		tagsStyle.Width(inputWidth).Render(v.formTags.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("\"%s\" and all its requirements and messages will be deleted.", v.deleteTarget.Name)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	scopeLabel := "my projects"
	if v.scope == scopeMine {
		scopeLabel = "all projects"
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s edit • %s del • %s search • %s tag • %s category • %s %s • %s browse reqs • %s refresh • %s logout • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("t"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("m"),
			scopeLabel,
			v.styles.HelpKey.Render("b"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("L"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
