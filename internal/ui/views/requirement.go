package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/controller"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/session"
	"github.com/dhruvm/cspace/internal/ui/keys"
	"github.com/dhruvm/cspace/internal/ui/styles"
)

// RequirementUpdated tells the hosting view that the requirement's
// status changed, so its own list needs a refresh.
type RequirementUpdated struct {
	Requirement models.Requirement
}

// RequirementDeleted tells the hosting view the requirement is gone.
type RequirementDeleted struct {
	ID int64
}

// CloseRequirement closes the detail overlay.
type CloseRequirement struct{}

// RequirementDetail is the requirement overlay with its comment thread.
// Both the project view and the cross-project browser embed it.
type RequirementDetail struct {
	client  *api.Client
	session *session.Store
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	req       models.Requirement
	canManage bool

	comments *controller.List[models.Comment]
	input    textarea.Model
	typing   bool

	confirmingDelete bool
	posting          bool

	errText string
}

// NewRequirementDetail creates the overlay. canManage enables the
// owner-only status toggle and delete.
func NewRequirementDetail(client *api.Client, sess *session.Store, req models.Requirement, canManage bool) *RequirementDetail {
	input := textarea.New()
	input.Placeholder = "Write a comment..."
	input.CharLimit = 1000
	input.SetWidth(50)
	input.SetHeight(2)
	input.ShowLineNumbers = false

	return &RequirementDetail{
		client:    client,
		session:   sess,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		req:       req,
		canManage: canManage,
		comments:  controller.NewList[models.Comment](),
		input:     input,
	}
}

func (d *RequirementDetail) Init() tea.Cmd {
	return d.loadComments()
}

func (d *RequirementDetail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.input.SetWidth(clamp(styles.ContentWidth(width)-12, 20, 60))
}

type commentsLoadedMsg struct {
	gen   int
	items []models.Comment
	err   error
}

type commentPostedMsg struct {
	err error
}

type reqStatusChangedMsg struct {
	req *models.Requirement
	err error
}

type reqDeletedMsg struct {
	err error
}

// loadComments fetches the thread. The server returns comments oldest
// first and the list keeps that order.
func (d *RequirementDetail) loadComments() tea.Cmd {
	gen := d.comments.Begin()
	id := d.req.ID
	return func() tea.Msg {
		items, err := d.client.Comments(context.Background(), id)
		return commentsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (d *RequirementDetail) postComment() tea.Cmd {
	content := strings.TrimSpace(d.input.Value())
	if content == "" {
		d.errText = "Comment cannot be empty"
		return nil
	}
	d.posting = true
	d.errText = ""
	id := d.req.ID
	return func() tea.Msg {
		_, err := d.client.CreateComment(context.Background(), id, content)
		return commentPostedMsg{err: err}
	}
}

func (d *RequirementDetail) toggleStatus() tea.Cmd {
	next := models.StatusClosed
	if d.req.Status == models.StatusClosed {
		next = models.StatusOpen
	}
	id := d.req.ID
	return func() tea.Msg {
		req, err := d.client.UpdateRequirementStatus(context.Background(), id, next)
		return reqStatusChangedMsg{req: req, err: err}
	}
}

func (d *RequirementDetail) Update(msg tea.Msg) (*RequirementDetail, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		if !d.comments.Complete(msg.gen, msg.items, msg.err) {
			return d, nil
		}
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return d, func() tea.Msg { return SessionExpired{} }
			}
			d.errText = api.UserMessage(msg.err)
		}
		return d, nil

	case commentPostedMsg:
		d.posting = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return d, func() tea.Msg { return SessionExpired{} }
			}
			d.errText = api.UserMessage(msg.err)
			return d, nil
		}
		d.input.Reset()
		d.typing = false
		d.input.Blur()
		return d, d.loadComments()

	case reqStatusChangedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return d, func() tea.Msg { return SessionExpired{} }
			}
			d.errText = api.UserMessage(msg.err)
			return d, nil
		}
		d.req = *msg.req
		updated := *msg.req
		return d, func() tea.Msg { return RequirementUpdated{Requirement: updated} }

	case reqDeletedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return d, func() tea.Msg { return SessionExpired{} }
			}
			d.errText = api.UserMessage(msg.err)
			return d, nil
		}
		id := d.req.ID
		return d, func() tea.Msg { return RequirementDeleted{ID: id} }

	case tea.KeyMsg:
		if d.confirmingDelete {
			switch msg.String() {
			case "y", "Y":
				d.confirmingDelete = false
				id := d.req.ID
				return d, func() tea.Msg {
					return reqDeletedMsg{err: d.client.DeleteRequirement(context.Background(), id)}
				}
			case "n", "N", "esc":
				d.confirmingDelete = false
			}
			return d, nil
		}

		if d.typing {
			switch {
			case key.Matches(msg, d.keys.Back):
				d.typing = false
				d.input.Blur()
				return d, nil
			case msg.String() == "ctrl+s":
				return d, d.postComment()
			}
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keys.Back):
			return d, func() tea.Msg { return CloseRequirement{} }

		case msg.String() == "c":
			d.typing = true
			d.input.Focus()
			return d, textarea.Blink

		case key.Matches(msg, d.keys.Refresh):
			return d, d.loadComments()

		case msg.String() == "s" && d.canManage:
			return d, d.toggleStatus()

		case key.Matches(msg, d.keys.Delete) && d.canManage:
			d.confirmingDelete = true
			return d, nil
		}
	}

	return d, nil
}

func (d *RequirementDetail) View() string {
	s := d.styles
	contentWidth := styles.ContentWidth(d.width)
	innerWidth := clamp(contentWidth-8, 30, 70)

	if d.confirmingDelete {
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Foreground(styles.Current.Error).Render("Delete Requirement?"),
			"",
			s.TitleMuted.Render(fmt.Sprintf("\"%s\" and its comments will be deleted.", d.req.Title)),
			"",
			lipgloss.JoinHorizontal(lipgloss.Center,
				s.ButtonPrimary.Render(" Y - Yes "),
				"  ",
				s.Button.Render(" N - No "),
			),
		)
		return s.Popup.Width(innerWidth).Render(content)
	}

	statusBadge := s.BadgeOpen.Render(string(d.req.Status))
	if d.req.Status == models.StatusClosed {
		statusBadge = s.BadgeClosed.Render(string(d.req.Status))
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.Title.Render(d.req.Title), " ", statusBadge, " ",
			s.BadgeSkill.Render(d.req.Priority.SkillLabel()),
		),
	}
	if d.req.Project != nil {
		rows = append(rows, s.TitleMuted.Render("in "+d.req.Project.Name))
	}
	rows = append(rows, "", d.req.Description)
	if len(d.req.Tags) > 0 {
		rows = append(rows, s.BadgeSkill.Render(models.JoinTags(d.req.Tags)))
	}
	if d.req.DueDate != nil {
		rows = append(rows, s.TitleMuted.Render("Due "+d.req.DueDate.Format("Jan 2, 2006")))
	}
	if d.req.Assignee != nil {
		rows = append(rows, s.TitleMuted.Render("Assigned to: ")+d.req.Assignee.FullName)
	}
	rows = append(rows, "", s.Title.Render("Comments"))

	switch {
	case !d.comments.Loaded() && d.comments.Status() == controller.StatusLoading:
		rows = append(rows, s.TitleMuted.Render("Loading comments..."))
	case d.comments.EmptyRaw():
		rows = append(rows, s.TitleMuted.Render("No comments yet."))
	default:
		for _, c := range d.comments.Items() {
			author := "unknown"
			if c.Author != nil {
				author = c.Author.FullName
			}
			rows = append(rows,
				s.HelpKey.Render(author)+s.TitleMuted.Render("  "+c.CreatedAt.Format("Jan 2 15:04")),
				lipgloss.NewStyle().Width(innerWidth-2).Render(c.Content),
			)
		}
	}

	if d.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(d.errText))
	}

	inputStyle := s.Input
	if d.typing {
		inputStyle = s.InputFocused
	}
	rows = append(rows, "", inputStyle.Render(d.input.View()))

	help := "c comment • r refresh • esc close"
	if d.typing {
		help = "Ctrl+S post • esc stop typing"
	} else if d.canManage {
		help = "c comment • s toggle status • d delete • r refresh • esc close"
	}
	if d.posting {
		help = "Posting..."
	}
	rows = append(rows, s.Help.Render(help))

	return s.Popup.Width(innerWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...))
}
