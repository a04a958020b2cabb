// Package queue publishes enrollment domain events to the message broker so
// external consumers (notifications, analytics) can react without querying
// the primary database.
package queue

import "time"

// QueueEnrollmentEvents is the durable queue every enrollment event goes to.
const QueueEnrollmentEvents = "enrollment.events"

// EventType names what happened to an application.
type EventType string

const (
	EventApplicationCreated EventType = "application.created"
	EventStatusChanged      EventType = "application.status_changed"
	EventFeedbackLeft       EventType = "application.feedback_left"
)

// EnrollmentEvent carries enough of the application for a consumer to act
// on it without reading the database.
type EnrollmentEvent struct {
	Type          EventType `json:"type"`
	ApplicationID uint64    `json:"application_id"`
	UserID        uint64    `json:"user_id"`
	CourseID      uint64    `json:"course_id"`
	CourseName    string    `json:"course_name"`
	FromStatus    string    `json:"from_status,omitempty"`
	Status        string    `json:"status"`
	ActorID       uint64    `json:"actor_id"`
	ActorIsAdmin  bool      `json:"actor_is_admin"`
	OccurredAt    time.Time `json:"occurred_at"`
}
