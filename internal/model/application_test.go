package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseApplicationStatus(t *testing.T) {
	cases := map[string]ApplicationStatus{
		"New":                StatusNew,
		" InProgress ":       StatusInProgress,
		"Completed":          StatusCompleted,
		"Новая":              StatusNew,
		"Идет обучение":      StatusInProgress,
		"Обучение завершено": StatusCompleted,
	}
	for in, want := range cases {
		got, ok := ParseApplicationStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "completed", "Done", "Отменена"} {
		_, ok := ParseApplicationStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestApplicationStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, ApplicationStatus("Новая").Valid())
	assert.False(t, ApplicationStatus("whatever").Valid())
}

func TestNextIsForwardOnly(t *testing.T) {
	next, ok := StatusNew.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, next)

	next, ok = StatusInProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, next)

	_, ok = StatusCompleted.Next()
	assert.False(t, ok)
}

func TestMemberMayTransition(t *testing.T) {
	all := []ApplicationStatus{StatusNew, StatusInProgress, StatusCompleted}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusInProgress && to == StatusCompleted
			assert.Equal(t, want, MemberMayTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestFeedbackAllowedOnlyWhenCompleted(t *testing.T) {
	assert.False(t, FeedbackAllowed(StatusNew))
	assert.False(t, FeedbackAllowed(StatusInProgress))
	assert.True(t, FeedbackAllowed(StatusCompleted))
}

func TestParseTicketStatus(t *testing.T) {
	got, ok := ParseTicketStatus("В обработке")
	assert.True(t, ok)
	assert.Equal(t, TicketInProcessing, got)

	got, ok = ParseTicketStatus("Closed")
	assert.True(t, ok)
	assert.Equal(t, TicketClosed, got)

	_, ok = ParseTicketStatus("Reopened")
	assert.False(t, ok)
}
