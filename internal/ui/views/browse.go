package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
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

var statusCycle = []string{controller.FilterAll, string(models.StatusOpen), string(models.StatusClosed)}

var skillCycle = []string{
	controller.FilterAll,
	string(models.PriorityLow),
	string(models.PriorityMedium),
	string(models.PriorityHigh),
}

// BrowseView is the cross-project requirement browser: every open call
// for help, filterable by status, skill level, text, and tags.
type BrowseView struct {
	client  *api.Client
	session *session.Store
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	list   *controller.List[models.Requirement]
	filter controller.RequirementFilter

	cursor  int
	scrollY int

	searching   bool
	searchInput textinput.Model

	tagPickerOpen bool
	tagCursor     int

	detail *RequirementDetail

	errText string
}

// NewBrowseView creates the requirement browser.
func NewBrowseView(client *api.Client, sess *session.Store) *BrowseView {
	search := textinput.New()
	search.Placeholder = "Search requirements..."
	search.CharLimit = 100

	return &BrowseView{
		client:      client,
		session:     sess,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		list:        controller.NewList[models.Requirement](),
		filter:      controller.RequirementFilter{Status: controller.FilterAll, Skill: controller.FilterAll},
		searchInput: search,
	}
}

func (v *BrowseView) Init() tea.Cmd {
	return v.refresh()
}

type browseLoadedMsg struct {
	gen   int
	items []models.Requirement
	err   error
}

func (v *BrowseView) refresh() tea.Cmd {
	gen := v.list.Begin()
	return func() tea.Msg {
		items, err := v.client.Requirements(context.Background())
		return browseLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *BrowseView) applyFilter() {
	v.list.SetPredicate(v.filter.Predicate())
	if v.cursor >= v.list.Len() {
		v.cursor = max(0, v.list.Len()-1)
	}
}

// availableTags collects the distinct tags present in the raw
// collection, so the picker only offers choices that can match.
func (v *BrowseView) availableTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, r := range v.list.Raw() {
		for _, t := range r.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func (v *BrowseView) cycleStatus() {
	v.filter.Status = cycleNext(statusCycle, v.filter.Status)
	v.applyFilter()
}

func (v *BrowseView) cycleSkill() {
	v.filter.Skill = cycleNext(skillCycle, v.filter.Skill)
	v.applyFilter()
}

func cycleNext(cycle []string, current string) string {
	for i, s := range cycle {
		if s == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (v *BrowseView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		if v.detail != nil {
			v.detail.SetSize(msg.Width, msg.Height)
		}
		return v, nil

	case browseLoadedMsg:
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

	case RequirementUpdated:
		return v, v.refresh()

	case RequirementDeleted:
		v.detail = nil
		return v, v.refresh()

	case CloseRequirement:
		v.detail = nil
		return v, nil
	}

	if v.detail != nil {
		var cmd tea.Cmd
		v.detail, cmd = v.detail.Update(msg)
		return v, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return v.updateKeys(keyMsg)
	}
	return v, nil
}

func (v *BrowseView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.searching = false
			v.searchInput.Blur()
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.filter.Query = v.searchInput.Value()
			v.applyFilter()
			return v, cmd
		}
	}

	if v.tagPickerOpen {
		tags := v.availableTags()
		switch {
		case key.Matches(msg, v.keys.Back):
			v.tagPickerOpen = false
			return v, nil
		case key.Matches(msg, v.keys.Up):
			if v.tagCursor > 0 {
				v.tagCursor--
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			if v.tagCursor < len(tags)-1 {
				v.tagCursor++
			}
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.tagCursor < len(tags) {
				v.filter = v.filter.ToggleTag(tags[v.tagCursor])
				v.applyFilter()
			}
			return v, nil
		}
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

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
			req := items[v.cursor]
			canManage := req.Project != nil && req.Project.OwnedBy(v.session.User())
			v.detail = NewRequirementDetail(v.client, v.session, req, canManage)
			v.detail.SetSize(v.width, v.height)
			return v, v.detail.Init()
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case msg.String() == "o":
		v.cycleStatus()
		return v, nil

	case msg.String() == "p":
		v.cycleSkill()
		return v, nil

	case msg.String() == "t":
		if len(v.availableTags()) > 0 {
			v.tagPickerOpen = true
			v.tagCursor = 0
		}
		return v, nil

	case msg.String() == "c":
		v.filter = controller.RequirementFilter{Status: controller.FilterAll, Skill: controller.FilterAll}
		v.searchInput.Reset()
		v.applyFilter()
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		return v, v.refresh()
	}

	return v, nil
}

func (v *BrowseView) ensureVisible() {
	availableHeight := max(v.height-12, 3)
	visibleItems := max(availableHeight/3, 1)

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *BrowseView) View() string {
	if v.detail != nil {
		return styles.CenterView(
			lipgloss.Place(styles.ContentWidth(v.width), v.height,
				lipgloss.Center, lipgloss.Center, v.detail.View()),
			v.width, v.height)
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *BrowseView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	searchBox := searchStyle.Width(clamp(contentWidth/3, 12, 30)).Render(v.searchInput.View())

	statusLabel := v.filter.Status
	if statusLabel == "" {
		statusLabel = controller.FilterAll
	}
	skillLabel := controller.FilterAll
	if v.filter.Skill != "" && v.filter.Skill != controller.FilterAll {
		skillLabel = models.Priority(v.filter.Skill).SkillLabel()
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		searchBox, " ",
		s.Button.Render("Status: "+statusLabel), " ",
		s.Button.Render("Skill: "+skillLabel),
	)
	if len(v.filter.Tags) > 0 {
		header += "\n" + s.BadgeSkill.Render("tags: "+models.JoinTags(v.filter.Tags))
	}
	if v.tagPickerOpen {
		header += "\n" + v.renderTagPicker()
	}

	lines := []string{s.Title.Render("Browse Requirements"), header}
	if v.errText != "" {
		lines = append(lines, s.ErrorText.Render(v.errText))
	}
	if v.list.Loaded() {
		lines = append(lines, s.TitleMuted.Render(
			fmt.Sprintf("Showing %d of %d requirements", v.list.Len(), v.list.RawLen())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *BrowseView) renderTagPicker() string {
	s := v.styles
	tags := v.availableTags()

	selected := make(map[string]bool, len(v.filter.Tags))
	for _, t := range v.filter.Tags {
		selected[t] = true
	}

	var items []string
	for i, t := range tags {
		mark := "[ ] "
		if selected[t] {
			mark = "[x] "
		}
		style := s.ListItem
		if i == v.tagCursor {
			style = s.ListSelected
		}
		items = append(items, style.Render(mark+t))
	}
	return s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *BrowseView) renderList() string {
	s := v.styles

	if !v.list.Loaded() {
		if v.list.Status() == controller.StatusError {
			return s.TitleMuted.Render("Could not load requirements. Press 'r' to retry.")
		}
		return s.TitleMuted.Render("Loading...")
	}
	if v.list.EmptyRaw() {
		return s.TitleMuted.Render("No requirements posted yet.")
	}
	if v.list.EmptyFiltered() {
		return s.TitleMuted.Render("No requirements match the current filters. Press 'c' to clear them.")
	}

	availableHeight := max(v.height-14, 3)
	visibleItems := max(availableHeight/3, 1)

	items := v.list.Items()
	endIdx := min(v.scrollY+visibleItems, len(items))

	var rows []string
	for i := v.scrollY; i < endIdx; i++ {
		rows = append(rows, v.renderItem(items[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *BrowseView) renderItem(r models.Requirement, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	statusBadge := s.BadgeOpen.Render(string(r.Status))
	if r.Status == models.StatusClosed {
		statusBadge = s.BadgeClosed.Render(string(r.Status))
	}
	titleLine := r.Title + "  " + statusBadge + " " + s.BadgeSkill.Render(r.Priority.SkillLabel())

	meta := ""
	if r.Project != nil {
		meta = "in " + r.Project.Name
	}
	if len(r.Tags) > 0 {
		meta += "  " + models.JoinTags(r.Tags)
	}

	var style lipgloss.Style
	if selected {
		style = s.ListSelected.Width(width)
	} else {
		style = s.ListItem.Width(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(titleLine),
		style.Render(s.TitleMuted.Render(meta)),
	) + "\n"
}

func (v *BrowseView) renderHelp() string {
	hk := v.styles.HelpKey.Render
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s search • %s status • %s skill • %s tags • %s clear • %s refresh • %s back • %s quit",
			hk("↵"), hk("/"), hk("o"), hk("p"), hk("t"), hk("c"), hk("r"), hk("esc"), hk("q")))
}
