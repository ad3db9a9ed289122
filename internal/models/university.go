package models

import (
	"time"
)

// UniversityStatus is the single canonical lifecycle representation.
// "blocked" is explicit rather than overloading "pending".
type UniversityStatus string

const (
	UniStatusPending  UniversityStatus = "pending"
	UniStatusApproved UniversityStatus = "approved"
	UniStatusRejected UniversityStatus = "rejected"
	UniStatusBlocked  UniversityStatus = "blocked"
	UniStatusUpdating UniversityStatus = "updating" // approved record with an in-flight edit
)

// ValidUniversityStatus reports whether s names a known status value.
func ValidUniversityStatus(s string) bool {
	switch UniversityStatus(s) {
	case UniStatusPending, UniStatusApproved, UniStatusRejected, UniStatusBlocked, UniStatusUpdating:
		return true
	}
	return false
}

type University struct {
	ID            string
	RegNumber     string // unique, immutable after creation
	Name          string
	Logo          string // opaque reference
	CoverImage    string // opaque reference
	Location      string
	Bio           string
	Website       string
	Estd          int
	Email         string
	Type          string
	TotalStudents int
	RequestedBy   string // student ID for self-service requests, empty for admin-created
	Status        UniversityStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
