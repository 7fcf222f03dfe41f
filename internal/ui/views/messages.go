package views

import "github.com/dhruvm/cspace/internal/models"

// Messages exchanged between views and the app model.

// AuthSuccess signals a completed login, registration, or restore.
type AuthSuccess struct {
	User *models.User
}

// LoggedOut signals that the user ended the session.
type LoggedOut struct{}

// SelectedProject asks the app to open a project's detail view.
type SelectedProject struct {
	Project models.Project
}

// OpenProjectByID asks the app to open a project known only by id,
// e.g. after accepting an invitation.
type OpenProjectByID struct {
	ID int64
}

// BackToProjects closes the current view in favor of the project list.
type BackToProjects struct{}

// OpenBrowse opens the cross-project requirement browser.
type OpenBrowse struct{}

// SessionExpired signals that the server rejected the stored token. The
// app drops back to the login screen.
type SessionExpired struct{}

// clamp returns val clamped between minVal and maxVal.
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
