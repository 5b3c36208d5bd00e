package domain

import "time"

// EmployeeStatus is the employment state of an employee record.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "congé"
	EmployeeOnTrial  EmployeeStatus = "essai"
)

// ValidEmployeeStatus reports whether s is a known employee status.
func ValidEmployeeStatus(s EmployeeStatus) bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeOnLeave, EmployeeOnTrial:
		return true
	}
	return false
}

// Employee is a staff record owned by one tenant.
type Employee struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Position       string         `json:"position"`
	StartDate      time.Time      `json:"start_date"`
	Status         EmployeeStatus `json:"status"`
	Email          string         `json:"email"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	EducationLevel string         `json:"education_level,omitempty"`
	Description    string         `json:"description,omitempty"`
	TenantSession  string         `json:"tenant_session"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
