package model

import (
	"strings"
	"time"
)

// TicketStatus is the state of a support ticket. Admins may set any of the
// four values in any order.
type TicketStatus string

const (
	TicketOpen         TicketStatus = "Open"
	TicketInProcessing TicketStatus = "InProcessing"
	TicketResolved     TicketStatus = "Resolved"
	TicketClosed       TicketStatus = "Closed"
)

var ticketLabels = map[string]TicketStatus{
	"открыт":      TicketOpen,
	"в обработке": TicketInProcessing,
	"решен":       TicketResolved,
	"закрыт":      TicketClosed,
}

// ParseTicketStatus accepts a status code or a legacy Russian label.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	s := strings.TrimSpace(raw)
	switch TicketStatus(s) {
	case TicketOpen, TicketInProcessing, TicketResolved, TicketClosed:
		return TicketStatus(s), true
	}
	if st, ok := ticketLabels[strings.ToLower(s)]; ok {
		return st, true
	}
	return "", false
}

// Ticket is a user-filed help request.
type Ticket struct {
	ID            uint64       `json:"id"`
	UserID        uint64       `json:"user_id"`
	Subject       string       `json:"subject"`
	Message       string       `json:"message"`
	Status        TicketStatus `json:"status"`
	AdminResponse *string      `json:"admin_response"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Requester contact, populated for admin listings and single reads.
	UserName  *string `json:"user_name,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
}
