package tui

import (
	"github.com/jask/notewise/internal/config"
	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
)

type errMsg struct{ error }

type statusMsg string

// Timer messages carry the sequence number current when they were scheduled;
// a mismatch means the screen that asked for them is gone.
type (
	splashDoneMsg    struct{ seq int }
	autoAdvanceMsg   struct{ seq int }
	tipTickMsg       struct{ seq int }
	progressTickMsg  struct{ seq int }
	generateReadyMsg struct{ seq int }
)

type generatedMsg struct {
	seq int
	id  string
	err error
}

type accountMsg struct {
	profile repository.Profile
	err     error
}

type dashboardMsg struct {
	recent  []repository.Note
	stats   service.Stats
	unread  int
	profile repository.Profile
}

type notesMsg struct {
	query  string
	filter string
	notes  []repository.Note
	counts []service.FilterCount
}

type noteMsg repository.Note

type notificationsMsg []repository.Notification

type resetDoneMsg struct{}

type noteDeletedMsg struct{ id string }

// ConfigMsg delivers a reloaded configuration to a running App.
type ConfigMsg config.Config
