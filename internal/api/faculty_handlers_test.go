package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
)

func facultyCookie(t *testing.T) *http.Cookie {
	return forgeCookie(t, session.Session{Token: "tok", UserID: "f1", Role: models.RoleFaculty, UserName: "Dr. Kumar"})
}

func TestFacultyDashboard(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/faculty/dashboard", r.URL.Path)
		jsonUpstream(w, http.StatusOK, `{"dashboard":{
			"facultyDetails":{"_id":"f1","name":"Dr. Kumar","quotaLimit":3,"quotaUsed":2},
			"totalProblemStatements":4,
			"assignedBatches":[{"_id":"b1"}]
		}}`)
	})

	w := p.do(t, http.MethodGet, "/faculty/dashboard", nil, facultyCookie(t))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "warning")
	dashboard := body["dashboard"].(map[string]any)
	assert.EqualValues(t, 4, dashboard["totalProblemStatements"])
}

func TestFacultyDashboardOverQuotaWarning(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		jsonUpstream(w, http.StatusOK, `{"dashboard":{
			"facultyDetails":{"_id":"f1","quotaLimit":3,"quotaUsed":5},
			"totalProblemStatements":5,
			"assignedBatches":[]
		}}`)
	})

	w := p.do(t, http.MethodGet, "/faculty/dashboard", nil, facultyCookie(t))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w)["warning"], "quota")
}

func TestCreateMyProblemStatement(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/faculty/problem-statements", r.URL.Path)
		jsonUpstream(w, http.StatusOK, `{"ps":{"_id":"ps-9","title":"Smart Irrigation"}}`)
	})

	w := p.do(t, http.MethodPost, "/faculty/problem-statements", map[string]any{
		"title":       "Smart Irrigation",
		"description": "Soil-moisture driven drip irrigation controller",
		"gDriveLink":  "https://drive.google.com/file/d/abc",
		"department":  "CSE",
		"domain":      "IoT",
	}, facultyCookie(t))

	assert.Equal(t, http.StatusOK, w.Code)
	ps := decodeBody(t, w)["ps"].(map[string]any)
	assert.Equal(t, "ps-9", ps["_id"])
}

func TestCreateMyProblemStatementValidation(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an invalid statement")
	})

	// Description below the minimum length.
	w := p.do(t, http.MethodPost, "/faculty/problem-statements", map[string]any{
		"title":       "Smart Irrigation",
		"description": "short",
		"gDriveLink":  "https://drive.google.com/file/d/abc",
		"department":  "CSE",
		"domain":      "IoT",
	}, facultyCookie(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMyProblemStatementRemoteRefusal(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		jsonUpstream(w, http.StatusForbidden, `{"message":"Cannot delete an assigned problem statement"}`)
	})

	w := p.do(t, http.MethodDelete, "/faculty/problem-statements/ps-9", nil, facultyCookie(t))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "assigned")
}

func TestUpdateBatchStudentsAsFaculty(t *testing.T) {
	p := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/faculty/batches/b1/students", r.URL.Path)
		jsonUpstream(w, http.StatusOK, `{"batch":{"_id":"b1","students":[{"nameInitial":"A. Arun"}]}}`)
	})

	w := p.do(t, http.MethodPut, "/faculty/batches/b1/students", map[string]any{"students": validRoster()}, facultyCookie(t))

	assert.Equal(t, http.StatusOK, w.Code)
	batch := decodeBody(t, w)["batch"].(map[string]any)
	assert.Equal(t, "b1", batch["_id"])
}
