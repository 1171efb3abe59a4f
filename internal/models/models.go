package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleBatch   Role = "batch"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFaculty || r == RoleBatch
}

// Departments offered by the college. Batch and faculty accounts are always
// scoped to one of these values.
var Departments = []string{"CSE", "ECE", "EEE", "Mech", "Civil", "IT", "AIDS", "BME"}

type Student struct {
	NameInitial string `json:"nameInitial" binding:"required"`
	RollNumber  string `json:"rollNumber" binding:"required"`
	Dept        string `json:"dept" binding:"required,department"`
	Section     string `json:"section" binding:"required"`
	Year        string `json:"year" binding:"required"`
	MailID      string `json:"mailId" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,min=10"`
}

type Faculty struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	QuotaLimit int       `json:"quotaLimit"`
	QuotaUsed  int       `json:"quotaUsed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OverQuota reports whether the remote service has let the faculty exceed
// its own limit. Displayed as a warning, never corrected locally.
func (f *Faculty) OverQuota() bool {
	return f.QuotaUsed > f.QuotaLimit
}

type ProblemStatement struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GDriveLink  string    `json:"gDriveLink"`
	Department  string    `json:"department"`
	Domain      string    `json:"domain"`
	FacultyID   string    `json:"facultyId"`
	FacultyName string    `json:"facultyName,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	IsAssigned  bool      `json:"isAssigned"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Batch struct {
	ID          string            `json:"_id"`
	BatchName   string            `json:"batchName"`
	Username    string            `json:"username"`
	Department  string            `json:"department"`
	Students    []Student         `json:"students"`
	Project     *ProblemStatement `json:"projectId,omitempty"`
	Coordinator *Faculty          `json:"coordinatorId,omitempty"`
	IsLocked    bool              `json:"isLocked"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type FacultyDashboard struct {
	FacultyDetails         Faculty `json:"facultyDetails"`
	TotalProblemStatements int     `json:"totalProblemStatements"`
	AssignedBatches        []Batch `json:"assignedBatches"`
}

// BatchReport is the remote service's summary of a locked batch, used for
// the downloadable report.
type BatchReport struct {
	BatchName  string    `json:"batchName"`
	Department string    `json:"department"`
	Project    string    `json:"project"`
	Students   []Student `json:"students"`
}

// BulkUploadResult mirrors the remote bulk endpoint's per-row outcome. Row
// validation happens entirely on the remote side.
type BulkUploadResult struct {
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Errors       []BulkUploadRow `json:"errors"`
}

type BulkUploadRow struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
