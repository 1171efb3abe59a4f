package workflow

import (
	"context"
	"errors"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
)

// ErrSelectionInFlight means a commit for this batch is already being
// submitted; the duplicate is refused rather than forwarded.
var ErrSelectionInFlight = errors.New("a submission for this batch is already in progress")

// Controller sequences the batch actor through the selection workflow.
// It never trusts client-held assumptions: every mutation goes through
// the allocation service and the returned snapshot decides the next view.
type Controller struct {
	client *client.Client
	guard  *Guard
}

func NewController(cli *client.Client) *Controller {
	return &Controller{client: cli, guard: NewGuard()}
}

// Snapshot refetches the batch and derives its workflow state.
func (wc *Controller) Snapshot(ctx context.Context, sess *session.Session) (*models.Batch, State, error) {
	b, err := wc.client.BatchDetails(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, State{}, err
	}
	return b, StateOf(b), nil
}

// SaveRoster submits the one-time student roster. The returned state is
// derived from the service's answer, not assumed.
func (wc *Controller) SaveRoster(ctx context.Context, sess *session.Session, students []models.Student) (*models.Batch, State, error) {
	key := sess.UserID + "/roster"
	if !wc.guard.Begin(key) {
		return nil, State{}, ErrSelectionInFlight
	}
	defer wc.guard.End(key)

	b, err := wc.client.SaveStudents(ctx, sess.Token, sess.UserID, students)
	if err != nil {
		return nil, State{}, err
	}
	return b, Reduce(State{Stage: StageNoRoster}, RosterSaved{b}), nil
}

// Domains lists the selectable domains for the batch's department.
func (wc *Controller) Domains(ctx context.Context, sess *session.Session, department string) ([]string, error) {
	return wc.client.BatchDomains(ctx, sess.Token, department)
}

// Statements lists the problem statements for one (department, domain).
func (wc *Controller) Statements(ctx context.Context, sess *session.Session, department, domain string) ([]models.ProblemStatement, error) {
	return wc.client.BatchProblemStatements(ctx, sess.Token, department, domain)
}

// Confirm commits the pending candidate. On success the batch is locked;
// on failure the caller lands back in browsing with no candidate held —
// nothing stays "confirmed" locally without server confirmation.
func (wc *Controller) Confirm(ctx context.Context, sess *session.Session, domain, psID string) (*models.Batch, State, error) {
	key := sess.UserID + "/choose"
	if !wc.guard.Begin(key) {
		return nil, State{}, ErrSelectionInFlight
	}
	defer wc.guard.End(key)

	pending := State{Stage: StageConfirming, Domain: domain, Candidate: psID}

	b, err := wc.client.ChooseProblemStatement(ctx, sess.Token, sess.UserID, psID)
	if err != nil {
		return nil, Reduce(pending, CommitFailed{}), err
	}
	return b, Reduce(pending, CommitSucceeded{b}), nil
}

// Report fetches the locked batch's report data.
func (wc *Controller) Report(ctx context.Context, sess *session.Session) (*models.BatchReport, error) {
	return wc.client.BatchReport(ctx, sess.Token, sess.UserID)
}
