package model

import (
	"strings"
	"time"
)

// ApplicationStatus is the lifecycle state of an enrollment application.
// The lifecycle only moves forward: New -> InProgress -> Completed.
type ApplicationStatus string

const (
	StatusNew        ApplicationStatus = "New"
	StatusInProgress ApplicationStatus = "InProgress"
	StatusCompleted  ApplicationStatus = "Completed"
)

// legacy labels stored by the previous frontend
var applicationLabels = map[string]ApplicationStatus{
	"новая":              StatusNew,
	"идет обучение":      StatusInProgress,
	"обучение завершено": StatusCompleted,
}

// ParseApplicationStatus accepts a status code ("InProgress") or one of the
// legacy Russian labels and reports whether it names a known state.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	s := strings.TrimSpace(raw)
	switch ApplicationStatus(s) {
	case StatusNew, StatusInProgress, StatusCompleted:
		return ApplicationStatus(s), true
	}
	if st, ok := applicationLabels[strings.ToLower(s)]; ok {
		return st, true
	}
	return "", false
}

// Valid reports whether s is one of the three lifecycle states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the forward successor of s. Completed has none.
func (s ApplicationStatus) Next() (ApplicationStatus, bool) {
	switch s {
	case StatusNew:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// MemberMayTransition reports whether the owner of an application (a
// non-admin) may move it from one state to another. Owners can only mark a
// running course as finished.
func MemberMayTransition(from, to ApplicationStatus) bool {
	return from == StatusInProgress && to == StatusCompleted
}

// FeedbackAllowed reports whether feedback may be stored in state s.
func FeedbackAllowed(s ApplicationStatus) bool {
	return s == StatusCompleted
}

// Application is a user's enrollment request. CourseName is resolved from
// course_id by the repository; the wire contract keeps the name.
type Application struct {
	ID            uint64            `json:"id"`
	UserID        uint64            `json:"user_id"`
	CourseID      uint64            `json:"course_id"`
	CourseName    string            `json:"course_name"`
	StartDate     string            `json:"start_date"`
	PaymentMethod string            `json:"payment_method"`
	Status        ApplicationStatus `json:"status"`
	Feedback      *string           `json:"feedback"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Owner contact, populated only for admin listings.
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}
