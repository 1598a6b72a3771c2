package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_AdminTransition_LegalPath(t *testing.T) {
	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	b := &ServiceBooking{Status: BookingPending}

	require.NoError(t, b.AdminTransition(BookingConfirmed, now))
	require.NoError(t, b.AdminTransition(BookingInProgress, now))
	require.NoError(t, b.AdminTransition(BookingCompleted, now))

	assert.Equal(t, BookingCompleted, b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, now, *b.CompletedAt)
}

func TestBooking_AdminTransition_IllegalJump(t *testing.T) {
	b := &ServiceBooking{Status: BookingPending}

	err := b.AdminTransition(BookingCompleted, time.Now())

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "pending", transitionErr.Current)
	assert.Contains(t, transitionErr.Attempted, "completed")
	assert.Equal(t, BookingPending, b.Status)
	assert.Nil(t, b.CompletedAt)
}

func TestBooking_AdminTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, terminal := range []BookingStatus{BookingCompleted, BookingCancelled} {
		b := &ServiceBooking{Status: terminal}
		err := b.AdminTransition(BookingConfirmed, time.Now())

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, "from %s", terminal)
	}
}

func TestBooking_Cancel(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress} {
		b := &ServiceBooking{Status: s}
		require.NoError(t, b.Cancel(), "from %s", s)
		assert.Equal(t, BookingCancelled, b.Status)
	}

	for _, s := range []BookingStatus{BookingCompleted, BookingCancelled} {
		b := &ServiceBooking{Status: s}
		err := b.Cancel()

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, "from %s", s)
		assert.Equal(t, s.String(), transitionErr.Current)
		assert.Equal(t, "cancel", transitionErr.Attempted)
	}
}

func TestBooking_GuardOwnerEdit(t *testing.T) {
	b := &ServiceBooking{Status: BookingPending}
	assert.NoError(t, b.GuardOwnerEdit())

	for _, s := range []BookingStatus{BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled} {
		b := &ServiceBooking{Status: s}
		err := b.GuardOwnerEdit()

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, "status %s", s)
	}
}

func TestBooking_CompletedAtStampedOnce(t *testing.T) {
	first := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	b := &ServiceBooking{Status: BookingInProgress}
	require.NoError(t, b.AdminTransition(BookingCompleted, first))
	require.NotNil(t, b.CompletedAt)

	// Same-status call later must not move the stamp.
	require.NoError(t, b.AdminTransition(BookingCompleted, first.Add(time.Hour)))
	assert.Equal(t, first, *b.CompletedAt)
}
