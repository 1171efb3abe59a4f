package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/excel"
	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
	"github.com/egspgoi/projectverse/internal/workflow"
)

// SaveRosterRequest carries the one-time student roster. All fields of
// every entry must be populated; a team is 1 to 7 students.
type SaveRosterRequest struct {
	Students []models.Student `json:"students" binding:"required,min=1,max=7,dive"`
}

// ChooseRequest commits the pending candidate statement.
type ChooseRequest struct {
	PSID   string `json:"psId" binding:"required"`
	Domain string `json:"domain" binding:"required"`
}

// BatchDashboard godoc
// @Summary      Batch dashboard
// @Description  Returns the batch snapshot and its workflow stage
// @Tags         batch
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /batch/dashboard [get]
func (h *Handlers) BatchDashboard(c *gin.Context) {
	s := session.FromContext(c)

	b, state, err := h.flow.Snapshot(c.Request.Context(), s)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := gin.H{"batch": b, "state": state}

	// A department with no domains is a dead end the batch cannot fix;
	// say so instead of showing an empty picker.
	if state.Stage == workflow.StageSelectingDomain {
		domains, err := h.flow.Domains(c.Request.Context(), s, b.Department)
		if err != nil {
			h.renderError(c, err)
			return
		}
		resp["domains"] = domains
		if len(domains) == 0 {
			resp["notice"] = "No project domains are available for your department yet. Please contact your administrator."
		}
	}

	c.JSON(http.StatusOK, resp)
}

// SaveRoster godoc
// @Summary      Save student roster
// @Description  One-time submission of the batch's 1-7 students
// @Tags         batch
// @Accept       json
// @Produce      json
// @Param        body  body  SaveRosterRequest  true  "Roster"
// @Success      200   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Security     SessionCookie
// @Router       /batch/students [post]
func (h *Handlers) SaveRoster(c *gin.Context) {
	s := session.FromContext(c)

	var req SaveRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Every student needs all details filled in (1 to 7 students)."})
		return
	}

	b, state, err := h.flow.SaveRoster(c.Request.Context(), s, req.Students)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": b, "state": state, "message": "Student details saved. You can now select a project."})
}

// BatchDomains godoc
// @Summary      List selectable domains
// @Tags         batch
// @Produce      json
// @Param        department  query  string  true  "Department code"
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /batch/domains [get]
func (h *Handlers) BatchDomains(c *gin.Context) {
	s := session.FromContext(c)

	department := c.Query("department")
	if department == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department is required"})
		return
	}

	domains, err := h.flow.Domains(c.Request.Context(), s, department)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

// BatchStatements godoc
// @Summary      List problem statements for a domain
// @Tags         batch
// @Produce      json
// @Param        department  query  string  true  "Department code"
// @Param        domain      query  string  true  "Domain"
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /batch/problem-statements [get]
func (h *Handlers) BatchStatements(c *gin.Context) {
	s := session.FromContext(c)

	department, domain := c.Query("department"), c.Query("domain")
	if department == "" || domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department and domain are required"})
		return
	}

	ps, err := h.flow.Statements(c.Request.Context(), s, department, domain)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ps": ps})
}

// ChooseStatement godoc
// @Summary      Commit the project selection
// @Description  Final, irreversible selection of a problem statement
// @Tags         batch
// @Accept       json
// @Produce      json
// @Param        body  body  ChooseRequest  true  "Selection"
// @Success      200   {object} map[string]interface{}
// @Failure      409   {object} map[string]string
// @Security     SessionCookie
// @Router       /batch/choose [post]
func (h *Handlers) ChooseStatement(c *gin.Context) {
	s := session.FromContext(c)

	var req ChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	b, state, err := h.flow.Confirm(c.Request.Context(), s, req.Domain, req.PSID)
	if err != nil {
		if errors.Is(err, workflow.ErrSelectionInFlight) || client.IsSessionInvalidated(err) {
			h.renderError(c, err)
			return
		}
		// Commit rejected: the user lands back in browsing with the
		// candidate cleared and must reselect.
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusConflict, gin.H{"error": apiErr.Message, "state": state})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batch": b, "state": state, "message": "Project selected. This selection is final."})
}

// BatchReport godoc
// @Summary      Download the batch report
// @Description  Excel report of the locked batch's project and roster
// @Tags         batch
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     SessionCookie
// @Router       /batch/report [get]
func (h *Handlers) BatchReport(c *gin.Context) {
	s := session.FromContext(c)

	report, err := h.flow.Report(c.Request.Context(), s)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteBatchReport(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build report"})
		return
	}

	name := strings.ReplaceAll(report.BatchName, " ", "-")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.xlsx", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
