package workflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/session"
	"github.com/egspgoi/projectverse/internal/workflow"
)

func batchSession() *session.Session {
	return &session.Session{Token: "tok", UserID: "b1", Role: "batch", UserName: "CSE Batch 01"}
}

func newController(t *testing.T, upstream http.HandlerFunc) *workflow.Controller {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return workflow.NewController(client.New(srv.URL, 5*time.Second))
}

func TestSnapshotDerivesStage(t *testing.T) {
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch/b1/details", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"batch":{"_id":"b1","batchName":"CSE Batch 01","students":[]}}`))
	})

	b, state, err := wc.Snapshot(context.Background(), batchSession())
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, workflow.StageNoRoster, state.Stage)
}

func TestSaveRosterAdvancesToDomainSelection(t *testing.T) {
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/batch/b1/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"batch":{"_id":"b1","students":[{"nameInitial":"A","rollNumber":"101"}]}}`))
	})

	_, state, err := wc.SaveRoster(context.Background(), batchSession(), roster(1))
	require.NoError(t, err)
	assert.Equal(t, workflow.StageSelectingDomain, state.Stage)
}

func TestConfirmLocksOnSuccess(t *testing.T) {
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/batch/b1/choose-ps", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"batch":{"_id":"b1","isLocked":true,"students":[{"nameInitial":"A","rollNumber":"101"}],"projectId":{"_id":"ps-9","title":"Smart Irrigation"}}}`))
	})

	b, state, err := wc.Confirm(context.Background(), batchSession(), "IoT", "ps-9")
	require.NoError(t, err)
	assert.True(t, b.IsLocked)
	assert.Equal(t, workflow.StageLocked, state.Stage)
	assert.Empty(t, state.Candidate)
}

func TestConfirmRejectionReturnsToBrowsing(t *testing.T) {
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"This problem statement was just taken by another batch"}`))
	})

	_, state, err := wc.Confirm(context.Background(), batchSession(), "IoT", "ps-9")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	// Nothing stays confirmed without the server's say-so: back to
	// browsing, candidate gone, domain kept so the list can reload.
	assert.Equal(t, workflow.StageBrowsing, state.Stage)
	assert.Equal(t, "IoT", state.Domain)
	assert.Empty(t, state.Candidate)
}

func TestConfirmRefusesDuplicateInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"batch":{"_id":"b1","isLocked":true,"students":[{"nameInitial":"A"}]}}`))
	})

	done := make(chan error, 1)
	go func() {
		_, _, err := wc.Confirm(context.Background(), batchSession(), "IoT", "ps-9")
		done <- err
	}()

	<-entered
	_, _, err := wc.Confirm(context.Background(), batchSession(), "IoT", "ps-9")
	assert.ErrorIs(t, err, workflow.ErrSelectionInFlight)

	close(release)
	require.NoError(t, <-done)

	// Once the first commit settles the guard is released.
	_, _, err = wc.Confirm(context.Background(), batchSession(), "IoT", "ps-9")
	require.NoError(t, err)
}

func TestDomainsAndStatementsPassThrough(t *testing.T) {
	wc := newController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/batch/domains":
			assert.Equal(t, "CSE", r.URL.Query().Get("department"))
			w.Write([]byte(`{"domains":["IoT","AI"]}`))
		case "/batch/problem-statements":
			assert.Equal(t, "IoT", r.URL.Query().Get("domain"))
			w.Write([]byte(`{"ps":[{"_id":"ps-9","title":"Smart Irrigation"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	domains, err := wc.Domains(context.Background(), batchSession(), "CSE")
	require.NoError(t, err)
	assert.Equal(t, []string{"IoT", "AI"}, domains)

	ps, err := wc.Statements(context.Background(), batchSession(), "CSE", "IoT")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "ps-9", ps[0].ID)
}
