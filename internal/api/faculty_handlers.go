package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/session"
)

// FacultyDashboard godoc
// @Summary      Faculty dashboard
// @Description  Quota usage, uploaded statements and assigned batches
// @Tags         faculty
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /faculty/dashboard [get]
func (h *Handlers) FacultyDashboard(c *gin.Context) {
	s := session.FromContext(c)

	dashboard, err := h.client.FacultyDashboard(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := gin.H{"dashboard": dashboard}
	if dashboard.FacultyDetails.OverQuota() {
		resp["warning"] = "Your quota is exceeded. Contact the administrator."
	}
	c.JSON(http.StatusOK, resp)
}

// MyProblemStatements godoc
// @Summary      List own problem statements
// @Tags         faculty
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /faculty/problem-statements [get]
func (h *Handlers) MyProblemStatements(c *gin.Context) {
	s := session.FromContext(c)

	ps, err := h.client.MyProblemStatements(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ps": ps})
}

func (h *Handlers) CreateMyProblemStatement(c *gin.Context) {
	s := session.FromContext(c)

	var req client.CreateProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid problem statement"})
		return
	}

	ps, err := h.client.CreateMyProblemStatement(c.Request.Context(), s.Token, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ps": ps})
}

// DeleteMyProblemStatement godoc
// @Summary      Delete an own, unassigned problem statement
// @Tags         faculty
// @Produce      json
// @Param        id  path  string  true  "Statement ID"
// @Success      200 {object} map[string]string
// @Security     SessionCookie
// @Router       /faculty/problem-statements/{id} [delete]
func (h *Handlers) DeleteMyProblemStatement(c *gin.Context) {
	s := session.FromContext(c)

	if err := h.client.DeleteMyProblemStatement(c.Request.Context(), s.Token, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Problem statement deleted"})
}

func (h *Handlers) FacultyBatchDetails(c *gin.Context) {
	s := session.FromContext(c)

	batch, err := h.client.FacultyBatchDetails(c.Request.Context(), s.Token, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

func (h *Handlers) UpdateBatchStudentsAsFaculty(c *gin.Context) {
	s := session.FromContext(c)

	var req UpdateStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Every student needs all details filled in (1 to 7 students)."})
		return
	}

	batch, err := h.client.UpdateBatchStudentsAsFaculty(c.Request.Context(), s.Token, c.Param("id"), req.Students)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}
