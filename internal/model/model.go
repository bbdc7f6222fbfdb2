// Package model defines domain entities used by services and repositories.
package model

import (
	"fmt"
	"time"
)

// Role names a fixed bundle of permission tags.
type Role string

const (
	RoleCaregiver Role = "caregiver"
	RoleElder     Role = "elder"
)

// Permission identifies one readable feature area, e.g. "vitals:read".
type Permission string

const (
	PermDashboard   Permission = "dashboard:read"
	PermVitals      Permission = "vitals:read"
	PermMedications Permission = "medications:read"
	PermExams       Permission = "exams:read"
	PermAllergies   Permission = "allergies:read"
	PermContacts    Permission = "contacts:read"
	PermElderInfo   Permission = "elder-info:read"
	PermNutrition   Permission = "nutrition:read"
	PermProfile     Permission = "profile:read"
)

// PermissionsForRole returns the fixed permission set for a role. Unknown
// roles fall back to the caregiver set, matching legacy records that predate
// roles entirely.
func PermissionsForRole(r Role) []Permission {
	switch r {
	case RoleElder:
		return []Permission{
			PermDashboard, PermVitals, PermMedications, PermExams,
			PermAllergies, PermNutrition, PermProfile,
		}
	default:
		return []Permission{
			PermDashboard, PermVitals, PermMedications, PermExams,
			PermAllergies, PermContacts, PermElderInfo, PermNutrition,
			PermProfile,
		}
	}
}

// AllPermissions lists every known permission tag.
func AllPermissions() []Permission {
	return PermissionsForRole(RoleCaregiver)
}

// ParsePermission validates a permission tag string.
func ParsePermission(s string) (Permission, error) {
	for _, p := range AllPermissions() {
		if Permission(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown permission tag %q", s)
}

// Profile is the elder's identity record. Exactly one exists per
// installation; caregiver name and sex may be empty.
type Profile struct {
	ElderName     string `json:"elderName"`
	BirthDate     string `json:"birthDate"` // ISO "YYYY-MM-DD"
	CaregiverName string `json:"caregiverName,omitempty"`
	Sex           string `json:"sex,omitempty"`
}

// User is an account derived from the identity profile. Username is unique
// within the database; password is the derived digit string.
type User struct {
	Username      string       `json:"username"`
	Password      string       `json:"password"`
	ElderName     string       `json:"elderName"`
	CaregiverName string       `json:"caregiverName,omitempty"`
	Role          Role         `json:"role"`
	Permissions   []Permission `json:"permissions"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Credentials are the derived login values handed back to the signup flow
// for display.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginStatus is the outcome of an authentication attempt.
type LoginStatus string

const (
	LoginSuccess LoginStatus = "success"
	LoginFailure LoginStatus = "failure"
)

// LoginEvent is one audit-log entry. Events are append-only; the log keeps
// only the most recent entries (see repository cap).
type LoginEvent struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Status    LoginStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// Session asserts that a user is currently logged in. At most one session
// exists per installation; it lives until logout or until read as invalid.
type Session struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	Username        string       `json:"username"`
	Role            Role         `json:"role"`
	Permissions     []Permission `json:"permissions"`
	LoginAt         time.Time    `json:"loginAt"`
}

// HasPermission reports whether the session grants the given tag. A nil
// session grants nothing.
func (s *Session) HasPermission(tag Permission) bool {
	if s == nil || !s.IsAuthenticated {
		return false
	}
	for _, p := range s.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}
