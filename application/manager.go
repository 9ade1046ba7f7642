// Package application tracks guides' applications to posts. State lives in
// memory for the lifetime of the process.
package application

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

var (
	// ErrNotFound is returned by Accept and Reject for an unknown id.
	ErrNotFound          = errors.New("application not found")
	// ErrInvalidTransition is returned when a status change leaves a terminal
	// status or goes back to pending.
	ErrInvalidTransition = errors.New("invalid application status transition")
)

// Manager holds every application created in this process.
type Manager struct {
	mu    sync.Mutex
	apps  []models.Application
	newID func() string
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{newID: uuid.NewString}
}

// Apply records a new pending application. Repeated applications by the same
// guide to the same post are kept as separate records.
func (m *Manager) Apply(postID, guideID string) models.Application {
	app := models.Application{
		ID:      m.newID(),
		PostID:  postID,
		GuideID: guideID,
		Status:  models.StatusPending,
	}
	m.mu.Lock()
	m.apps = append(m.apps, app)
	m.mu.Unlock()
	return app
}

// List returns the applications to a post in the order they were made.
func (m *Manager) List(postID string) []models.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Application{}
	for _, a := range m.apps {
		if a.PostID == postID {
			out = append(out, a)
		}
	}
	return out
}

// UpdateStatus replaces the stored application with the same id. An unknown
// id is ignored. Leaving a terminal status or returning to pending is rejected.
func (m *Manager) UpdateStatus(app models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(app.ID)
	if i < 0 {
		return nil
	}
	if !allowed(m.apps[i].Status, app.Status) {
		return ErrInvalidTransition
	}
	m.apps[i] = app
	return nil
}

// Accept moves a pending application to accepted.
func (m *Manager) Accept(id string) (models.Application, error) {
	return m.transition(id, models.StatusAccepted)
}

// Reject moves a pending application to rejected.
func (m *Manager) Reject(id string) (models.Application, error) {
	return m.transition(id, models.StatusRejected)
}

func (m *Manager) transition(id string, to models.ApplicationStatus) (models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.Application{}, ErrNotFound
	}
	if !allowed(m.apps[i].Status, to) {
		return m.apps[i], ErrInvalidTransition
	}
	m.apps[i].Status = to
	return m.apps[i], nil
}

func (m *Manager) indexOf(id string) int {
	for i := range m.apps {
		if m.apps[i].ID == id {
			return i
		}
	}
	return -1
}

// allowed reports whether an application may move from one status to another.
// Keeping the same status is always allowed.
func allowed(from, to models.ApplicationStatus) bool {
	if from == to {
		return true
	}
	return from == models.StatusPending && to.Terminal()
}
