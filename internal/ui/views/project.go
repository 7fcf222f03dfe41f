package views

import (
	"context"
	"fmt"
	"strings"
	"time"

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

type projectTab int

const (
	tabOverview projectTab = iota
	tabRequirements
	tabChat
)

var tabNames = []string{"Overview", "Requirements", "Chat"}

// ProjectView is the detail screen for one project. The project record,
// its requirements, and its chat log load independently; a mutation
// refreshes only the collection it touched.
type ProjectView struct {
	client  *api.Client
	session *session.Store
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	projectID int64
	project   *controller.Resource[models.Project]
	reqs      *controller.List[models.Requirement]
	chat      *controller.List[models.Message]

	tab projectTab

	// requirements tab
	reqCursor  int
	reqScrollY int
	detail     *RequirementDetail

	creatingReq  bool
	reqTitle     textinput.Model
	reqDesc      textarea.Model
	reqTags      textinput.Model
	reqDue       textinput.Model
	reqPriority  int // index into skill levels
	reqFormFocus int // 0=title 1=desc 2=priority 3=tags 4=due 5=save
	reqFormErr   string

	// overview tab
	inviting    bool
	inviteInput textinput.Model

	// chat tab
	chatInput      textinput.Model
	chatTyping     bool
	chatScrollY    int
	confirmingWipe bool

	statusText string
	errText    string
}

var reqPriorities = []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}

// NewProjectView creates the detail screen. seed, when non-nil, renders
// immediately while the fresh record loads.
func NewProjectView(client *api.Client, sess *session.Store, projectID int64, seed *models.Project) *ProjectView {
	reqTitle := textinput.New()
	reqTitle.Placeholder = "Title"
	reqTitle.CharLimit = 100

	reqDesc := textarea.New()
	reqDesc.Placeholder = "Description"
	reqDesc.CharLimit = 1000
	reqDesc.SetWidth(50)
	reqDesc.SetHeight(3)
	reqDesc.ShowLineNumbers = false

	reqTags := textinput.New()
	reqTags.Placeholder = "Tags (comma separated, optional)"
	reqTags.CharLimit = 200

	reqDue := textinput.New()
	reqDue.Placeholder = "Due date YYYY-MM-DD (optional)"
	reqDue.CharLimit = 10

	invite := textinput.New()
	invite.Placeholder = "teammate@example.com"
	invite.CharLimit = 100

	chatInput := textinput.New()
	chatInput.Placeholder = "Message..."
	chatInput.CharLimit = 500

	v := &ProjectView{
		client:      client,
		session:     sess,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		projectID:   projectID,
		project:     controller.NewResource[models.Project](),
		reqs:        controller.NewList[models.Requirement](),
		chat:        controller.NewList[models.Message](),
		reqTitle:    reqTitle,
		reqDesc:     reqDesc,
		reqTags:     reqTags,
		reqDue:      reqDue,
		inviteInput: invite,
		chatInput:   chatInput,
	}
	if seed != nil {
		gen := v.project.Begin()
		v.project.Complete(gen, *seed, nil)
	}
	return v
}

// Init starts all three fetches at once; none blocks the others.
func (v *ProjectView) Init() tea.Cmd {
	return tea.Batch(v.loadProject(), v.loadRequirements(), v.loadChat())
}

type projectLoadedMsg struct {
	gen     int
	project *models.Project
	err     error
}

type projectReqsLoadedMsg struct {
	gen   int
	items []models.Requirement
	err   error
}

type chatLoadedMsg struct {
	gen   int
	items []models.Message
	err   error
}

type reqCreatedMsg struct {
	err error
}

type inviteSentMsg struct {
	err error
}

type messageSentMsg struct {
	err error
}

type chatClearedMsg struct {
	err error
}

func (v *ProjectView) loadProject() tea.Cmd {
	gen := v.project.Begin()
	id := v.projectID
	return func() tea.Msg {
		p, err := v.client.Project(context.Background(), id)
		return projectLoadedMsg{gen: gen, project: p, err: err}
	}
}

func (v *ProjectView) loadRequirements() tea.Cmd {
	gen := v.reqs.Begin()
	id := v.projectID
	return func() tea.Msg {
		items, err := v.client.ProjectRequirements(context.Background(), id)
		return projectReqsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *ProjectView) loadChat() tea.Cmd {
	gen := v.chat.Begin()
	id := v.projectID
	return func() tea.Msg {
		items, err := v.client.ChatMessages(context.Background(), id)
		return chatLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *ProjectView) isOwner() bool {
	if !v.project.Loaded() {
		return false
	}
	p := v.project.Value()
	return p.OwnedBy(v.session.User())
}

func (v *ProjectView) fail(err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		return func() tea.Msg { return SessionExpired{} }
	}
	v.errText = api.UserMessage(err)
	return nil
}

func (v *ProjectView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.reqDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		if v.detail != nil {
			v.detail.SetSize(msg.Width, msg.Height)
		}
		return v, nil

	case projectLoadedMsg:
		var value models.Project
		if msg.project != nil {
			value = *msg.project
		}
		if !v.project.Complete(msg.gen, value, msg.err) {
			return v, nil
		}
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		return v, nil

	case projectReqsLoadedMsg:
		if !v.reqs.Complete(msg.gen, msg.items, msg.err) {
			return v, nil
		}
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		if v.reqCursor >= v.reqs.Len() {
			v.reqCursor = max(0, v.reqs.Len()-1)
		}
		return v, nil

	case chatLoadedMsg:
		if !v.chat.Complete(msg.gen, msg.items, msg.err) {
			return v, nil
		}
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		// Follow the tail like a chat window.
		v.chatScrollY = max(0, v.chat.Len()-v.chatVisible())
		return v, nil

	case reqCreatedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return v, func() tea.Msg { return SessionExpired{} }
			}
			v.reqFormErr = api.UserMessage(msg.err)
			return v, nil
		}
		v.creatingReq = false
		v.statusText = "Requirement posted"
		return v, v.loadRequirements()

	case inviteSentMsg:
		v.inviting = false
		v.inviteInput.Blur()
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		v.inviteInput.Reset()
		v.statusText = "Invitation sent"
		return v, nil

	case messageSentMsg:
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		v.chatInput.Reset()
		return v, v.loadChat()

	case chatClearedMsg:
		if msg.err != nil {
			return v, v.fail(msg.err)
		}
		v.statusText = "Chat history cleared"
		return v, v.loadChat()

	case RequirementUpdated:
		return v, v.loadRequirements()

	case RequirementDeleted:
		v.detail = nil
		return v, v.loadRequirements()

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
		v.statusText = ""
		return v.updateKeys(keyMsg)
	}
	return v, nil
}

func (v *ProjectView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.creatingReq {
		return v.updateReqForm(msg)
	}
	if v.confirmingWipe {
		switch msg.String() {
		case "y", "Y":
			v.confirmingWipe = false
			id := v.projectID
			return v, func() tea.Msg {
				return chatClearedMsg{err: v.client.ClearChat(context.Background(), id)}
			}
		case "n", "N", "esc":
			v.confirmingWipe = false
		}
		return v, nil
	}
	if v.inviting {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.inviting = false
			v.inviteInput.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, v.sendInvite()
		}
		var cmd tea.Cmd
		v.inviteInput, cmd = v.inviteInput.Update(msg)
		return v, cmd
	}
	if v.chatTyping {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.chatTyping = false
			v.chatInput.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, v.sendMessage()
		}
		var cmd tea.Cmd
		v.chatInput, cmd = v.chatInput.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Tab):
		v.tab = (v.tab + 1) % 3
		return v, nil

	case msg.String() == "1":
		v.tab = tabOverview
		return v, nil
	case msg.String() == "2":
		v.tab = tabRequirements
		return v, nil
	case msg.String() == "3":
		v.tab = tabChat
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		switch v.tab {
		case tabOverview:
			return v, v.loadProject()
		case tabRequirements:
			return v, v.loadRequirements()
		default:
			return v, v.loadChat()
		}
	}

	switch v.tab {
	case tabOverview:
		return v.updateOverviewKeys(msg)
	case tabRequirements:
		return v.updateRequirementsKeys(msg)
	default:
		return v.updateChatKeys(msg)
	}
}

func (v *ProjectView) updateOverviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "i" && v.isOwner() {
		v.inviting = true
		v.inviteInput.Focus()
		return v, textinput.Blink
	}
	return v, nil
}

func (v *ProjectView) updateRequirementsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.reqCursor > 0 {
			v.reqCursor--
			v.ensureReqVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.reqCursor < v.reqs.Len()-1 {
			v.reqCursor++
			v.ensureReqVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		items := v.reqs.Items()
		if v.reqCursor < len(items) {
			v.detail = NewRequirementDetail(v.client, v.session, items[v.reqCursor], v.isOwner())
			v.detail.SetSize(v.width, v.height)
			return v, v.detail.Init()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		if v.isOwner() {
			v.startReqForm()
			return v, textinput.Blink
		}
		return v, nil
	}
	return v, nil
}

func (v *ProjectView) updateChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.chatScrollY > 0 {
			v.chatScrollY--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.chatScrollY < max(0, v.chat.Len()-v.chatVisible()) {
			v.chatScrollY++
		}
		return v, nil

	case msg.String() == "i", key.Matches(msg, v.keys.Enter):
		v.chatTyping = true
		v.chatInput.Focus()
		return v, textinput.Blink

	case msg.String() == "X" && v.isOwner():
		v.confirmingWipe = true
		return v, nil
	}
	return v, nil
}

func (v *ProjectView) startReqForm() {
	v.creatingReq = true
	v.reqFormFocus = 0
	v.reqFormErr = ""
	v.reqTitle.Reset()
	v.reqDesc.Reset()
	v.reqTags.Reset()
	v.reqDue.Reset()
	v.reqPriority = 0
	v.updateReqFormFocus()
}

func (v *ProjectView) updateReqForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creatingReq = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveRequirement()

	case key.Matches(msg, v.keys.Tab):
		v.reqFormFocus = (v.reqFormFocus + 1) % 6
		v.updateReqFormFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.reqFormFocus = (v.reqFormFocus + 5) % 6
		v.updateReqFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.reqFormFocus == 2 && v.reqPriority > 0 {
			v.reqPriority--
			return v, nil
		}

	case key.Matches(msg, v.keys.Down):
		if v.reqFormFocus == 2 && v.reqPriority < len(reqPriorities)-1 {
			v.reqPriority++
			return v, nil
		}

	case key.Matches(msg, v.keys.Enter):
		switch v.reqFormFocus {
		case 0, 2, 3, 4:
			v.reqFormFocus++
			v.updateReqFormFocus()
			return v, nil
		case 5:
			return v, v.saveRequirement()
		}
	}

	var cmd tea.Cmd
	switch v.reqFormFocus {
	case 0:
		v.reqTitle, cmd = v.reqTitle.Update(msg)
	case 1:
		v.reqDesc, cmd = v.reqDesc.Update(msg)
	case 3:
		v.reqTags, cmd = v.reqTags.Update(msg)
	case 4:
		v.reqDue, cmd = v.reqDue.Update(msg)
	}
	return v, cmd
}

func (v *ProjectView) updateReqFormFocus() {
	v.reqTitle.Blur()
	v.reqDesc.Blur()
	v.reqTags.Blur()
	v.reqDue.Blur()
	switch v.reqFormFocus {
	case 0:
		v.reqTitle.Focus()
	case 1:
		v.reqDesc.Focus()
	case 3:
		v.reqTags.Focus()
	case 4:
		v.reqDue.Focus()
	}
}

func (v *ProjectView) saveRequirement() tea.Cmd {
	title := strings.TrimSpace(v.reqTitle.Value())
	desc := strings.TrimSpace(v.reqDesc.Value())
	due := strings.TrimSpace(v.reqDue.Value())
	if title == "" {
		v.reqFormErr = "Title is required"
		return nil
	}
	if desc == "" {
		v.reqFormErr = "Description is required"
		return nil
	}
	if due != "" {
		if _, err := time.Parse("2006-01-02", due); err != nil {
			v.reqFormErr = "Due date must be YYYY-MM-DD"
			return nil
		}
	}

	in := api.RequirementInput{
		Title:       title,
		Description: desc,
		Tags:        models.SplitTags(v.reqTags.Value()),
		Priority:    reqPriorities[v.reqPriority],
		DueDate:     due,
		ProjectID:   v.projectID,
	}
	return func() tea.Msg {
		_, err := v.client.CreateRequirement(context.Background(), in)
		return reqCreatedMsg{err: err}
	}
}

func (v *ProjectView) sendInvite() tea.Cmd {
	email := strings.TrimSpace(v.inviteInput.Value())
	if email == "" || !strings.Contains(email, "@") {
		v.errText = "Enter a valid email address"
		return nil
	}
	v.errText = ""
	id := v.projectID
	return func() tea.Msg {
		return inviteSentMsg{err: v.client.Invite(context.Background(), id, email)}
	}
}

func (v *ProjectView) sendMessage() tea.Cmd {
	content := strings.TrimSpace(v.chatInput.Value())
	if content == "" {
		return nil
	}
	user := v.session.User()
	if user == nil {
		return nil
	}
	id := v.projectID
	senderID := user.ID
	return func() tea.Msg {
		_, err := v.client.SendMessage(context.Background(), id, senderID, content)
		return messageSentMsg{err: err}
	}
}

func (v *ProjectView) chatVisible() int {
	// Two lines per message.
	return max((v.height-14)/2, 3)
}

func (v *ProjectView) ensureReqVisible() {
	availableHeight := max(v.height-14, 3)
	visibleItems := max(availableHeight/3, 1)

	if v.reqCursor < v.reqScrollY {
		v.reqScrollY = v.reqCursor
	} else if v.reqCursor >= v.reqScrollY+visibleItems {
		v.reqScrollY = v.reqCursor - visibleItems + 1
	}
}

func (v *ProjectView) View() string {
	if v.detail != nil {
		return styles.CenterView(
			lipgloss.Place(styles.ContentWidth(v.width), v.height,
				lipgloss.Center, lipgloss.Center, v.detail.View()),
			v.width, v.height)
	}
	if v.creatingReq {
		return v.renderReqForm()
	}
	if v.confirmingWipe {
		return v.renderWipeConfirm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	switch v.tab {
	case tabOverview:
		b.WriteString(v.renderOverview())
	case tabRequirements:
		b.WriteString(v.renderRequirements())
	default:
		b.WriteString(v.renderChat())
	}
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *ProjectView) renderHeader() string {
	s := v.styles

	name := fmt.Sprintf("Project #%d", v.projectID)
	if v.project.Loaded() {
		name = v.project.Value().Name
	}

	var tabs []string
	for i, t := range tabNames {
		if projectTab(i) == v.tab {
			tabs = append(tabs, s.TabActive.Render(t))
		} else {
			tabs = append(tabs, s.Tab.Render(t))
		}
	}

	lines := []string{
		s.Title.Render(name),
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...),
	}
	if v.errText != "" {
		lines = append(lines, s.ErrorText.Render(v.errText))
	}
	if v.statusText != "" {
		lines = append(lines, s.SuccessText.Render(v.statusText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *ProjectView) renderOverview() string {
	s := v.styles

	if !v.project.Loaded() {
		if v.project.Status() == controller.StatusError {
			return s.TitleMuted.Render("Could not load project. Press 'r' to retry.")
		}
		return s.TitleMuted.Render("Loading...")
	}
	p := v.project.Value()

	rows := []string{p.Description, ""}
	rows = append(rows, s.TitleMuted.Render("Category: ")+p.Category)
	if len(p.Tags) > 0 {
		rows = append(rows, s.TitleMuted.Render("Tags: ")+models.JoinTags(p.Tags))
	}
	if p.Owner != nil {
		rows = append(rows, s.TitleMuted.Render("Owner: ")+p.Owner.FullName)
	}

	rows = append(rows, "", s.Title.Render(fmt.Sprintf("Team (%d)", len(p.Team))))
	if len(p.Team) == 0 {
		rows = append(rows, s.TitleMuted.Render("No teammates yet."))
	}
	for _, member := range p.Team {
		rows = append(rows, "  • "+member.FullName+s.TitleMuted.Render("  "+member.Email))
	}

	if v.isOwner() {
		rows = append(rows, "")
		if v.inviting {
			rows = append(rows,
				"Invite by email:",
				s.InputFocused.Width(40).Render(v.inviteInput.View()),
			)
		} else {
			rows = append(rows, s.TitleMuted.Render("Press 'i' to invite a teammate."))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectView) renderRequirements() string {
	s := v.styles

	if !v.reqs.Loaded() {
		if v.reqs.Status() == controller.StatusError {
			return s.TitleMuted.Render("Could not load requirements. Press 'r' to retry.")
		}
		return s.TitleMuted.Render("Loading...")
	}
	if v.reqs.EmptyRaw() {
		if v.isOwner() {
			return s.TitleMuted.Render("No requirements yet. Press 'n' to post one.")
		}
		return s.TitleMuted.Render("No requirements yet.")
	}

	availableHeight := max(v.height-14, 3)
	visibleItems := max(availableHeight/3, 1)

	items := v.reqs.Items()
	endIdx := min(v.reqScrollY+visibleItems, len(items))

	var rows []string
	for i := v.reqScrollY; i < endIdx; i++ {
		r := items[i]

		statusBadge := s.BadgeOpen.Render(string(r.Status))
		if r.Status == models.StatusClosed {
			statusBadge = s.BadgeClosed.Render(string(r.Status))
		}
		titleLine := r.Title + "  " + statusBadge + " " + s.BadgeSkill.Render(r.Priority.SkillLabel())

		meta := ""
		if len(r.Tags) > 0 {
			meta = models.JoinTags(r.Tags)
		}
		if r.DueDate != nil {
			meta += "  due " + r.DueDate.Format("Jan 2")
		}

		style := s.ListItem
		if i == v.reqCursor {
			style = s.ListSelected
		}
		width := max(styles.ContentWidth(v.width)-4, 20)
		rows = append(rows, lipgloss.JoinVertical(lipgloss.Left,
			style.Width(width).Render(titleLine),
			style.Width(width).Render(s.TitleMuted.Render(meta)),
		)+"\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectView) renderChat() string {
	s := v.styles

	if !v.chat.Loaded() {
		if v.chat.Status() == controller.StatusError {
			return s.TitleMuted.Render("Could not load chat. Press 'r' to retry.")
		}
		return s.TitleMuted.Render("Loading...")
	}

	user := v.session.User()
	contentWidth := styles.ContentWidth(v.width)
	bubbleWidth := clamp(contentWidth*2/3, 20, 60)

	var rows []string
	if v.chat.EmptyRaw() {
		rows = append(rows, s.TitleMuted.Render("No messages yet. Say hello!"))
	} else {
		msgs := v.chat.Items()
		endIdx := min(v.chatScrollY+v.chatVisible(), len(msgs))
		for i := v.chatScrollY; i < endIdx; i++ {
			m := msgs[i]
			sender := "unknown"
			mine := false
			if m.Sender != nil {
				sender = m.Sender.FullName
				mine = user != nil && m.Sender.ID == user.ID
			}
			header := s.TitleMuted.Render(sender + " • " + m.CreatedAt.Format("15:04"))
			bubble := s.ChatTheirs.MaxWidth(bubbleWidth).Render(m.Content)
			if mine {
				bubble = s.ChatMine.MaxWidth(bubbleWidth).Render(m.Content)
				header = lipgloss.PlaceHorizontal(contentWidth-4, lipgloss.Right, header)
				bubble = lipgloss.PlaceHorizontal(contentWidth-4, lipgloss.Right, bubble)
			}
			rows = append(rows, header, bubble)
		}
	}

	inputStyle := s.Input
	if v.chatTyping {
		inputStyle = s.InputFocused
	}
	rows = append(rows, "", inputStyle.Width(clamp(contentWidth-6, 20, 60)).Render(v.chatInput.View()))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectView) renderReqForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	style := func(idx int) lipgloss.Style {
		if v.reqFormFocus == idx {
			return s.InputFocused
		}
		return s.Input
	}
	btnStyle := s.Button
	if v.reqFormFocus == 5 {
		btnStyle = s.ButtonFocused
	}

	rows := []string{s.Title.Render("New Requirement"), ""}
	if v.reqFormErr != "" {
		rows = append(rows, s.ErrorText.Render(v.reqFormErr), "")
	}
	rows = append(rows,
		"Title:",
		style(0).Width(inputWidth).Render(v.reqTitle.View()),
		"",
		"Description:",
		style(1).Render(v.reqDesc.View()),
		"",
		"Skill level (↑↓):",
		style(2).Width(inputWidth).Render(reqPriorities[v.reqPriority].SkillLabel()),
		"",
		"Tags:",
		style(3).Width(inputWidth).Render(v.reqTags.View()),
		"",
		"Due date:",
		style(4).Width(inputWidth).Render(v.reqDue.View()),
		"",
		btnStyle.Render(" Post "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: post • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectView) renderWipeConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Clear Chat History?"),
		"",
		s.TitleMuted.Render("Every message in this project's chat will be deleted for everyone."),
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

func (v *ProjectView) renderHelp() string {
	hk := v.styles.HelpKey.Render
	common := fmt.Sprintf("%s/%s/%s tabs • %s refresh • %s back • %s quit",
		hk("1"), hk("2"), hk("3"), hk("r"), hk("esc"), hk("q"))

	switch v.tab {
	case tabOverview:
		if v.isOwner() {
			return v.styles.Help.Render(fmt.Sprintf("%s invite • %s", hk("i"), common))
		}
		return v.styles.Help.Render(common)
	case tabRequirements:
		if v.isOwner() {
			return v.styles.Help.Render(fmt.Sprintf("%s open • %s new • %s", hk("↵"), hk("n"), common))
		}
		return v.styles.Help.Render(fmt.Sprintf("%s open • %s", hk("↵"), common))
	default:
		if v.isOwner() {
			return v.styles.Help.Render(fmt.Sprintf("%s type • %s send • %s clear history • %s", hk("i"), hk("↵"), hk("X"), common))
		}
		return v.styles.Help.Render(fmt.Sprintf("%s type • %s send • %s", hk("i"), hk("↵"), common))
	}
}
