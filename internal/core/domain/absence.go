package domain

import "time"

// AbsenceStatus is the review state of an absence request.
type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// ValidAbsenceStatus reports whether s is a known absence status.
func ValidAbsenceStatus(s AbsenceStatus) bool {
	switch s {
	case AbsencePending, AbsenceApproved, AbsenceRejected:
		return true
	}
	return false
}

// Absence is a leave request referencing an Employee in the same tenant.
type Absence struct {
	ID            string        `json:"id"`
	EmployeeID    string        `json:"employee_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Reason        string        `json:"reason"`
	Status        AbsenceStatus `json:"status"`
	TenantSession string        `json:"tenant_session"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
