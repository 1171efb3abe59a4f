package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/excel"
	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UpdateStudentsRequest replaces a batch roster on behalf of an admin or
// faculty. Same 1-7 rule as the batch's own submission.
type UpdateStudentsRequest struct {
	Students []models.Student `json:"students" binding:"required,min=1,max=7,dive"`
}

// AdminDashboard godoc
// @Summary      Admin dashboard stats
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /admin/dashboard [get]
func (h *Handlers) AdminDashboard(c *gin.Context) {
	s := session.FromContext(c)
	ctx := c.Request.Context()

	faculties, err := h.client.Faculties(ctx, s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}
	batches, err := h.client.Batches(ctx, s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}

	selected := 0
	for _, b := range batches {
		if b.Project != nil {
			selected++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"faculties":        len(faculties),
		"batches":          len(batches),
		"projectsSelected": selected,
	})
}

// ListFaculties godoc
// @Summary      List faculty accounts
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /admin/faculties [get]
func (h *Handlers) ListFaculties(c *gin.Context) {
	s := session.FromContext(c)

	faculties, err := h.client.Faculties(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// Over-quota is a warning state, assigned remotely and only shown.
	overQuota := []string{}
	for i := range faculties {
		if faculties[i].OverQuota() {
			overQuota = append(overQuota, faculties[i].ID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"faculties": faculties, "overQuota": overQuota})
}

// CreateFaculty godoc
// @Summary      Create a faculty account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  client.CreateFacultyRequest  true  "Faculty"
// @Success      200   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Security     SessionCookie
// @Router       /admin/faculties [post]
func (h *Handlers) CreateFaculty(c *gin.Context) {
	s := session.FromContext(c)

	var req client.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid faculty details"})
		return
	}

	faculty, err := h.client.CreateFaculty(c.Request.Context(), s.Token, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *Handlers) UpdateFaculty(c *gin.Context) {
	s := session.FromContext(c)

	var req client.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid faculty details"})
		return
	}

	faculty, err := h.client.UpdateFaculty(c.Request.Context(), s.Token, c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *Handlers) DeleteFaculty(c *gin.Context) {
	s := session.FromContext(c)

	if err := h.client.DeleteFaculty(c.Request.Context(), s.Token, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Faculty deleted"})
}

// ListBatches godoc
// @Summary      List batch accounts
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /admin/batches [get]
func (h *Handlers) ListBatches(c *gin.Context) {
	s := session.FromContext(c)

	batches, err := h.client.Batches(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func (h *Handlers) CreateBatch(c *gin.Context) {
	s := session.FromContext(c)

	var req client.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch details"})
		return
	}

	batch, err := h.client.CreateBatch(c.Request.Context(), s.Token, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

func (h *Handlers) UpdateBatch(c *gin.Context) {
	s := session.FromContext(c)

	var req client.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch details"})
		return
	}

	batch, err := h.client.UpdateBatch(c.Request.Context(), s.Token, c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

func (h *Handlers) UpdateBatchStudents(c *gin.Context) {
	s := session.FromContext(c)

	var req UpdateStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Every student needs all details filled in (1 to 7 students)."})
		return
	}

	batch, err := h.client.UpdateBatchStudents(c.Request.Context(), s.Token, c.Param("id"), req.Students)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

// ListProblemStatements godoc
// @Summary      List all problem statements
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /admin/problem-statements [get]
func (h *Handlers) ListProblemStatements(c *gin.Context) {
	s := session.FromContext(c)

	ps, err := h.client.AdminProblemStatements(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ps": ps})
}

func (h *Handlers) CreateProblemStatement(c *gin.Context) {
	s := session.FromContext(c)

	var req client.CreateProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid problem statement"})
		return
	}

	ps, err := h.client.CreateProblemStatement(c.Request.Context(), s.Token, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ps": ps})
}

// BulkUpload godoc
// @Summary      Bulk upload accounts or statements
// @Description  Forwards the uploaded file to the allocation service; row validation is remote
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        entity  path  string  true  "faculty | batch | problem-statements"
// @Param        file    formData  file  true  "Upload file"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Security     SessionCookie
// @Router       /admin/bulk-upload/{entity} [post]
func (h *Handlers) BulkUpload(c *gin.Context) {
	s := session.FromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.client.BulkUpload(c.Request.Context(), s.Token, c.Param("entity"), header.Filename, file)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": result})
}

// BulkTemplate serves the header-only workbook for one bulk entity.
func (h *Handlers) BulkTemplate(c *gin.Context) {
	entity := c.Param("entity")

	var buf bytes.Buffer
	if err := excel.WriteBulkTemplate(&buf, entity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+entity+"-template.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// AllocationReport godoc
// @Summary      Export the allocation summary
// @Description  Excel workbook with one row per batch and its selection status
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     SessionCookie
// @Router       /admin/reports/allocations [get]
func (h *Handlers) AllocationReport(c *gin.Context) {
	s := session.FromContext(c)

	batches, err := h.client.Batches(c.Request.Context(), s.Token)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteAllocationSummary(&buf, batches); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build report"})
		return
	}

	name := "allocations-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
