// Package workflow models the batch actor's path from first login to the
// final project lock as an explicit state machine. The server's batch
// snapshot is the source of truth; the reducer only decides which view
// the snapshot and the latest user action lead to.
package workflow

import "github.com/egspgoi/projectverse/internal/models"

type Stage string

const (
	StageNoRoster        Stage = "no_roster"
	StageSelectingDomain Stage = "selecting_domain"
	StageBrowsing        Stage = "browsing_statements"
	StageConfirming      Stage = "confirming_selection"
	StageLocked          Stage = "locked"
)

// State is the client-visible workflow position. Domain and Candidate are
// transient UI selections; they never outlive a server refresh.
type State struct {
	Stage     Stage  `json:"stage"`
	Domain    string `json:"domain,omitempty"`
	Candidate string `json:"candidate,omitempty"`
}

// StageOf derives the resting stage from a server snapshot. An empty
// roster always routes to roster entry, whatever the lock or project
// state claims; a locked batch is terminal.
func StageOf(b *models.Batch) Stage {
	if b == nil || len(b.Students) == 0 {
		return StageNoRoster
	}
	if b.IsLocked {
		return StageLocked
	}
	return StageSelectingDomain
}

func StateOf(b *models.Batch) State {
	return State{Stage: StageOf(b)}
}

type Event interface {
	isEvent()
}

type RosterSaved struct{ Batch *models.Batch }

type DomainChosen struct{ Domain string }

type BackToDomains struct{}

type StatementPicked struct{ PSID string }

type SelectionCancelled struct{}

type CommitSucceeded struct{ Batch *models.Batch }

type CommitFailed struct{}

type Refreshed struct{ Batch *models.Batch }

func (RosterSaved) isEvent()        {}
func (DomainChosen) isEvent()       {}
func (BackToDomains) isEvent()      {}
func (StatementPicked) isEvent()    {}
func (SelectionCancelled) isEvent() {}
func (CommitSucceeded) isEvent()    {}
func (CommitFailed) isEvent()       {}
func (Refreshed) isEvent()          {}

// Reduce maps (state, event) to the next state. Events that do not apply
// in the current stage leave the state untouched, which is what makes
// StageLocked terminal: no selection event applies there.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Refreshed:
		return StateOf(ev.Batch)
	case RosterSaved:
		return StateOf(ev.Batch)
	case DomainChosen:
		if s.Stage == StageSelectingDomain {
			return State{Stage: StageBrowsing, Domain: ev.Domain}
		}
	case BackToDomains:
		if s.Stage == StageBrowsing || s.Stage == StageConfirming {
			return State{Stage: StageSelectingDomain}
		}
	case StatementPicked:
		if s.Stage == StageBrowsing {
			return State{Stage: StageConfirming, Domain: s.Domain, Candidate: ev.PSID}
		}
	case SelectionCancelled:
		if s.Stage == StageConfirming {
			return State{Stage: StageBrowsing, Domain: s.Domain}
		}
	case CommitSucceeded:
		return StateOf(ev.Batch)
	case CommitFailed:
		// back to browsing with the candidate cleared; the user must
		// reselect
		if s.Stage == StageConfirming {
			return State{Stage: StageBrowsing, Domain: s.Domain}
		}
	}
	return s
}
