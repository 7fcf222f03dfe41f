package views

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/models"
	"github.com/dhruvm/cspace/internal/session"
	"github.com/dhruvm/cspace/internal/ui/keys"
	"github.com/dhruvm/cspace/internal/ui/styles"
)

type loginMode int

const (
	modeSignIn loginMode = iota
	modeSignUp
)

// LoginView is the sign-in / sign-up screen.
type LoginView struct {
	session *session.Store
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	mode       loginMode
	fullName   textinput.Model
	email      textinput.Model
	password   textinput.Model
	focusIdx   int
	submitting bool
	errText    string
}

// NewLoginView creates the login screen.
func NewLoginView(sess *session.Store) *LoginView {
	fullName := textinput.New()
	fullName.Placeholder = "Full name"
	fullName.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	return &LoginView{
		session:  sess,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		fullName: fullName,
		email:    email,
		password: password,
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// SetError shows a message above the form, e.g. after a session expiry.
func (v *LoginView) SetError(text string) {
	v.errText = text
}

type authResultMsg struct {
	user *models.User
	err  error
}

func (v *LoginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	fullName := strings.TrimSpace(v.fullName.Value())

	// Validation failures never reach the network.
	switch {
	case v.mode == modeSignUp && fullName == "":
		v.errText = "Full name is required"
		return nil
	case email == "":
		v.errText = "Email is required"
		return nil
	case password == "":
		v.errText = "Password is required"
		return nil
	}

	v.submitting = true
	v.errText = ""
	mode := v.mode
	return func() tea.Msg {
		var user *models.User
		var err error
		if mode == modeSignUp {
			user, err = v.session.Register(context.Background(), session.RegisterInput{
				FullName: fullName,
				Email:    email,
				Password: password,
			})
		} else {
			user, err = v.session.Login(context.Background(), email, password)
		}
		return authResultMsg{user: user, err: err}
	}
}

func (v *LoginView) fieldCount() int {
	if v.mode == modeSignUp {
		return 4 // name, email, password, submit
	}
	return 3 // email, password, submit
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case authResultMsg:
		v.submitting = false
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, session.ErrInvalidCredentials):
				v.errText = "Invalid email or password"
			default:
				v.errText = api.UserMessage(msg.err)
			}
			return v, nil
		}
		return v, func() tea.Msg {
			return AuthSuccess{User: msg.user}
		}

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}

		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case msg.String() == "ctrl+r":
			// Flip between sign in and sign up.
			if v.mode == modeSignIn {
				v.mode = modeSignUp
			} else {
				v.mode = modeSignIn
			}
			v.focusIdx = 0
			v.errText = ""
			v.updateFocus()
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case msg.String() == "shift+tab":
			n := v.fieldCount()
			v.focusIdx = (v.focusIdx + n - 1) % n
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < v.fieldCount()-1 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()

		case msg.String() == "ctrl+s":
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.activeField() {
	case &v.fullName:
		v.fullName, cmd = v.fullName.Update(msg)
	case &v.email:
		v.email, cmd = v.email.Update(msg)
	case &v.password:
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// activeField maps focusIdx to an input, accounting for the extra name
// field in sign-up mode. A nil result means the submit button.
func (v *LoginView) activeField() *textinput.Model {
	idx := v.focusIdx
	if v.mode == modeSignUp {
		switch idx {
		case 0:
			return &v.fullName
		case 1:
			return &v.email
		case 2:
			return &v.password
		}
		return nil
	}
	switch idx {
	case 0:
		return &v.email
	case 1:
		return &v.password
	}
	return nil
}

func (v *LoginView) updateFocus() {
	v.fullName.Blur()
	v.email.Blur()
	v.password.Blur()
	if f := v.activeField(); f != nil {
		f.Focus()
	}
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	title := "Sign In"
	switchHint := "Ctrl+R: create an account"
	if v.mode == modeSignUp {
		title = "Create Account"
		switchHint = "Ctrl+R: back to sign in"
	}

	rows := []string{
		s.Title.Render("CSpace — " + title),
		"",
	}
	if v.errText != "" {
		rows = append(rows, s.ErrorText.Render(v.errText), "")
	}

	focusStyle := func(idx int) lipgloss.Style {
		if v.focusIdx == idx {
			return s.InputFocused
		}
		return s.Input
	}

	idx := 0
	if v.mode == modeSignUp {
		rows = append(rows,
			"Full name:",
			focusStyle(idx).Width(inputWidth).Render(v.fullName.View()),
			"",
		)
		idx++
	}
	rows = append(rows,
		"Email:",
		focusStyle(idx).Width(inputWidth).Render(v.email.View()),
		"",
		"Password:",
		focusStyle(idx+1).Width(inputWidth).Render(v.password.View()),
		"",
	)

	btn := s.Button
	if v.focusIdx == v.fieldCount()-1 {
		btn = s.ButtonFocused
	}
	label := " Submit "
	if v.submitting {
		label = " Signing in... "
	}
	rows = append(rows,
		btn.Render(label),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: submit • "+switchHint),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
