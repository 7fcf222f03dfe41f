// Package ui hosts the top-level program model: the restore gate, the
// login screen, and the signed-in screens, with one active at a time.
package ui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/session"
	"github.com/dhruvm/cspace/internal/store"
	"github.com/dhruvm/cspace/internal/ui/styles"
	"github.com/dhruvm/cspace/internal/ui/views"
)

type screen int

const (
	screenRestoring screen = iota
	screenLogin
	screenProjects
	screenBrowse
	screenProject
)

// App is the root bubbletea model.
type App struct {
	client  *api.Client
	session *session.Store
	kv      *store.Store
	log     *zap.Logger

	width  int
	height int

	screen   screen
	login    *views.LoginView
	projects *views.ProjectListView
	browse   *views.BrowseView
	project  *views.ProjectView
}

// New creates the root model. The session restore runs in Init.
func New(client *api.Client, sess *session.Store, kv *store.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		client:  client,
		session: sess,
		kv:      kv,
		log:     log.Named("ui"),
		screen:  screenRestoring,
		login:   views.NewLoginView(sess),
	}
}

type restoredMsg struct {
	user *models.User
	err  error
}

type inviteAcceptedMsg struct {
	result *api.InvitationResult
	err    error
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Restore(context.Background())
		return restoredMsg{user: user, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every live view tracks the terminal size.
		a.forwardSize(msg)
		return a, nil

	case restoredMsg:
		if msg.err != nil {
			// Transport failure: the credential survives, but the user
			// has to sign in (or fix the network) to continue.
			a.login.SetError(api.UserMessage(msg.err))
			a.screen = screenLogin
			return a, a.login.Init()
		}
		if msg.user == nil {
			a.screen = screenLogin
			return a, a.login.Init()
		}
		return a, a.enterHome()

	case views.AuthSuccess:
		return a, a.enterHome()

	case views.LoggedOut:
		a.session.Logout()
		return a, a.toLogin("")

	case views.SessionExpired:
		a.session.Logout()
		return a, a.toLogin("Your session has expired. Please sign in again.")

	case views.SelectedProject:
		if err := a.kv.Set(store.KeyLastProject, strconv.FormatInt(msg.Project.ID, 10)); err != nil {
			a.log.Warn("persist last project", zap.Error(err))
		}
		seed := msg.Project
		a.project = views.NewProjectView(a.client, a.session, seed.ID, &seed)
		a.screen = screenProject
		return a, a.initView(a.project)

	case views.OpenProjectByID:
		a.project = views.NewProjectView(a.client, a.session, msg.ID, nil)
		a.screen = screenProject
		return a, a.initView(a.project)

	case views.BackToProjects:
		a.project = nil
		a.browse = nil
		a.screen = screenProjects
		if a.projects == nil {
			a.projects = views.NewProjectListView(a.client, a.session)
			return a, a.initView(a.projects)
		}
		// Returning to a cached list still refetches; the collection
		// may have changed while we were away.
		a.forwardSizeToCurrent()
		return a, a.projects.Init()

	case views.OpenBrowse:
		a.browse = views.NewBrowseView(a.client, a.session)
		a.screen = screenBrowse
		return a, a.initView(a.browse)

	case inviteAcceptedMsg:
		if msg.err != nil {
			a.log.Warn("accept invitation", zap.Error(msg.err))
			return a, nil
		}
		id := msg.result.ProjectID
		return a, func() tea.Msg { return views.OpenProjectByID{ID: id} }
	}

	return a.route(msg)
}

// enterHome switches to the project list and redeems any invitation
// stashed before authentication.
func (a *App) enterHome() tea.Cmd {
	a.screen = screenProjects
	a.projects = views.NewProjectListView(a.client, a.session)
	cmds := []tea.Cmd{a.initView(a.projects)}

	if token := a.session.TakePendingInvite(); token != "" {
		cmds = append(cmds, func() tea.Msg {
			result, err := a.client.AcceptInvitation(context.Background(), token)
			return inviteAcceptedMsg{result: result, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (a *App) toLogin(errText string) tea.Cmd {
	a.projects = nil
	a.browse = nil
	a.project = nil
	a.login = views.NewLoginView(a.session)
	if errText != "" {
		a.login.SetError(errText)
	}
	a.screen = screenLogin
	a.forwardSizeToCurrent()
	return a.login.Init()
}

// initView sends the stored terminal size before the view's own Init so
// the first render is laid out correctly.
func (a *App) initView(v tea.Model) tea.Cmd {
	a.forwardSizeToCurrent()
	return v.Init()
}

func (a *App) forwardSize(msg tea.WindowSizeMsg) {
	if a.login != nil {
		m, _ := a.login.Update(msg)
		a.login = m.(*views.LoginView)
	}
	if a.projects != nil {
		m, _ := a.projects.Update(msg)
		a.projects = m.(*views.ProjectListView)
	}
	if a.browse != nil {
		m, _ := a.browse.Update(msg)
		a.browse = m.(*views.BrowseView)
	}
	if a.project != nil {
		m, _ := a.project.Update(msg)
		a.project = m.(*views.ProjectView)
	}
}

func (a *App) forwardSizeToCurrent() {
	if a.width == 0 && a.height == 0 {
		return
	}
	a.forwardSize(tea.WindowSizeMsg{Width: a.width, Height: a.height})
}

// route hands the message to the active screen's model.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case screenRestoring:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case screenLogin:
		var m tea.Model
		m, cmd = a.login.Update(msg)
		a.login = m.(*views.LoginView)
	case screenProjects:
		var m tea.Model
		m, cmd = a.projects.Update(msg)
		a.projects = m.(*views.ProjectListView)
	case screenBrowse:
		var m tea.Model
		m, cmd = a.browse.Update(msg)
		a.browse = m.(*views.BrowseView)
	case screenProject:
		var m tea.Model
		m, cmd = a.project.Update(msg)
		a.project = m.(*views.ProjectView)
	}
	return a, cmd
}

func (a *App) View() string {
	switch a.screen {
	case screenRestoring:
		return styles.CenterView("Restoring session...", a.width, a.height)
	case screenLogin:
		return a.login.View()
	case screenProjects:
		return a.projects.View()
	case screenBrowse:
		return a.browse.View()
	case screenProject:
		return a.project.View()
	}
	return ""
}
