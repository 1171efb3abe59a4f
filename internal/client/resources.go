package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/egspgoi/projectverse/internal/models"
)

// ---- batch actor ----

// SaveStudents submits the full roster for a batch. The service returns
// the updated batch snapshot, which is the source of truth for the
// selection workflow.
func (c *Client) SaveStudents(ctx context.Context, token, batchID string, students []models.Student) (*models.Batch, error) {
	body := struct {
		Students []models.Student `json:"students"`
	}{students}
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/batch/"+batchID+"/students", body, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

// BatchDomains lists the project domains available for one department.
func (c *Client) BatchDomains(ctx context.Context, token, department string) ([]string, error) {
	var out struct {
		Domains []string `json:"domains"`
	}
	path := "/batch/domains?department=" + url.QueryEscape(department)
	if err := c.do(ctx, token, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// BatchProblemStatements lists statements for a (department, domain) pair.
func (c *Client) BatchProblemStatements(ctx context.Context, token, department, domain string) ([]models.ProblemStatement, error) {
	var out struct {
		PS []models.ProblemStatement `json:"ps"`
	}
	path := fmt.Sprintf("/batch/problem-statements?department=%s&domain=%s",
		url.QueryEscape(department), url.QueryEscape(domain))
	if err := c.do(ctx, token, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.PS, nil
}

// ChooseProblemStatement commits the batch's final project selection. The
// service enforces first-writer-wins; a second commit for a locked batch
// is rejected remotely.
func (c *Client) ChooseProblemStatement(ctx context.Context, token, batchID, psID string) (*models.Batch, error) {
	body := struct {
		PSID string `json:"psId"`
	}{psID}
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPut, "/batch/"+batchID+"/choose-ps", body, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

func (c *Client) BatchDetails(ctx context.Context, token, batchID string) (*models.Batch, error) {
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/batch/"+batchID+"/details", nil, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

func (c *Client) BatchReport(ctx context.Context, token, batchID string) (*models.BatchReport, error) {
	var out struct {
		Report models.BatchReport `json:"report"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/batch/"+batchID+"/report", nil, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// ---- admin ----

type CreateFacultyRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required,department"`
	QuotaLimit int    `json:"quotaLimit" binding:"required,min=1"`
}

type UpdateFacultyRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,department"`
	QuotaLimit int    `json:"quotaLimit" binding:"min=0"`
}

type CreateBatchRequest struct {
	BatchName  string `json:"batchName" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required,department"`
}

type UpdateBatchRequest struct {
	BatchName string `json:"batchName" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

type CreateProblemStatementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=10"`
	GDriveLink  string `json:"gDriveLink" binding:"required,url"`
	Department  string `json:"department" binding:"required,department"`
	Domain      string `json:"domain" binding:"required"`
	FacultyID   string `json:"facultyId,omitempty"`
}

func (c *Client) Faculties(ctx context.Context, token string) ([]models.Faculty, error) {
	var out struct {
		Faculties []models.Faculty `json:"faculties"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/admin/faculties", nil, &out); err != nil {
		return nil, err
	}
	return out.Faculties, nil
}

func (c *Client) CreateFaculty(ctx context.Context, token string, req CreateFacultyRequest) (*models.Faculty, error) {
	var out struct {
		Faculty models.Faculty `json:"faculty"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/admin/faculties", req, &out); err != nil {
		return nil, err
	}
	return &out.Faculty, nil
}

func (c *Client) UpdateFaculty(ctx context.Context, token, id string, req UpdateFacultyRequest) (*models.Faculty, error) {
	var out struct {
		Faculty models.Faculty `json:"faculty"`
	}
	if err := c.do(ctx, token, http.MethodPut, "/admin/faculties/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out.Faculty, nil
}

func (c *Client) DeleteFaculty(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/admin/faculties/"+id, nil, nil)
}

func (c *Client) Batches(ctx context.Context, token string) ([]models.Batch, error) {
	var out struct {
		Batches []models.Batch `json:"batches"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/admin/batches", nil, &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

func (c *Client) CreateBatch(ctx context.Context, token string, req CreateBatchRequest) (*models.Batch, error) {
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/admin/batches", req, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

func (c *Client) UpdateBatch(ctx context.Context, token, id string, req UpdateBatchRequest) (*models.Batch, error) {
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPut, "/admin/batches/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

// UpdateBatchStudents replaces a batch roster on behalf of an admin.
func (c *Client) UpdateBatchStudents(ctx context.Context, token, id string, students []models.Student) (*models.Batch, error) {
	body := struct {
		Students []models.Student `json:"students"`
	}{students}
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPut, "/admin/batches/"+id+"/students", body, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

func (c *Client) AdminProblemStatements(ctx context.Context, token string) ([]models.ProblemStatement, error) {
	var out struct {
		PS []models.ProblemStatement `json:"ps"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/admin/problem-statements", nil, &out); err != nil {
		return nil, err
	}
	return out.PS, nil
}

func (c *Client) CreateProblemStatement(ctx context.Context, token string, req CreateProblemStatementRequest) (*models.ProblemStatement, error) {
	var out struct {
		PS models.ProblemStatement `json:"ps"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/admin/problem-statements", req, &out); err != nil {
		return nil, err
	}
	return &out.PS, nil
}

// BulkUpload forwards an uploaded file to the remote bulk endpoint without
// interpreting it. Row parsing and schema validation stay remote.
func (c *Client) BulkUpload(ctx context.Context, token, entity, filename string, file io.Reader) (*models.BulkUploadResult, error) {
	path := "/admin/bulk-upload/" + entity
	if isProtected(path) && token == "" {
		return nil, ErrNoSession
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("allocation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Results models.BulkUploadResult `json:"results"`
	}
	if err := decodeResponse(http.MethodPost, resp, &out); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// ---- faculty ----

func (c *Client) FacultyDashboard(ctx context.Context, token string) (*models.FacultyDashboard, error) {
	var out struct {
		Dashboard models.FacultyDashboard `json:"dashboard"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/faculty/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out.Dashboard, nil
}

func (c *Client) MyProblemStatements(ctx context.Context, token string) ([]models.ProblemStatement, error) {
	var out struct {
		PS []models.ProblemStatement `json:"ps"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/faculty/problem-statements", nil, &out); err != nil {
		return nil, err
	}
	return out.PS, nil
}

func (c *Client) CreateMyProblemStatement(ctx context.Context, token string, req CreateProblemStatementRequest) (*models.ProblemStatement, error) {
	var out struct {
		PS models.ProblemStatement `json:"ps"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/faculty/problem-statements", req, &out); err != nil {
		return nil, err
	}
	return &out.PS, nil
}

func (c *Client) DeleteMyProblemStatement(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/faculty/problem-statements/"+id, nil, nil)
}

func (c *Client) FacultyBatchDetails(ctx context.Context, token, batchID string) (*models.Batch, error) {
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/faculty/batches/"+batchID, nil, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

func (c *Client) UpdateBatchStudentsAsFaculty(ctx context.Context, token, batchID string, students []models.Student) (*models.Batch, error) {
	body := struct {
		Students []models.Student `json:"students"`
	}{students}
	var out struct {
		Batch models.Batch `json:"batch"`
	}
	if err := c.do(ctx, token, http.MethodPut, "/faculty/batches/"+batchID+"/students", body, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

// ---- files / health ----

// InvalidateFileToken burns a one-shot document-viewer token once the
// viewer closes.
func (c *Client) InvalidateFileToken(ctx context.Context, token, fileToken string) error {
	return c.do(ctx, token, http.MethodDelete, "/files/token/"+fileToken, nil, nil)
}

// Ping checks that the allocation service answers at all. Used by the
// scheduled health probe; no authentication involved.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "", http.MethodGet, "/health", nil, nil)
}
