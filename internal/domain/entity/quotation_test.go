package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotation_AdminTransition_LegalPath(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	q := &QuotationRequest{Status: QuotationPending}

	require.NoError(t, q.AdminTransition(QuotationReviewing, now))
	require.NoError(t, q.AdminTransition(QuotationQuoted, now))
	require.NoError(t, q.AdminTransition(QuotationAccepted, now))
	require.NoError(t, q.AdminTransition(QuotationCompleted, now))

	assert.Equal(t, QuotationCompleted, q.Status)
}

func TestQuotation_AdminTransition_StampsQuotedAtOnce(t *testing.T) {
	first := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	q := &QuotationRequest{Status: QuotationReviewing}
	require.NoError(t, q.AdminTransition(QuotationQuoted, first))
	require.NotNil(t, q.QuotedAt)
	assert.Equal(t, first, *q.QuotedAt)

	// Leaving quoted and re-entering must not re-stamp.
	require.NoError(t, q.AdminTransition(QuotationExpired, later))
	assert.Equal(t, first, *q.QuotedAt)
}

func TestQuotation_AdminTransition_AnyValidTargetFromAnyState(t *testing.T) {
	all := []QuotationStatus{
		QuotationPending, QuotationReviewing, QuotationQuoted,
		QuotationAccepted, QuotationRejected, QuotationCompleted, QuotationExpired,
	}
	for _, from := range all {
		for _, to := range all {
			q := &QuotationRequest{Status: from}
			require.NoError(t, q.AdminTransition(to, time.Now()), "%s -> %s", from, to)
			assert.Equal(t, to, q.Status)
		}
	}
}

func TestQuotation_AdminTransition_DirectJumpsStampQuotedAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	q := &QuotationRequest{Status: QuotationPending}
	require.NoError(t, q.AdminTransition(QuotationQuoted, now))
	require.NotNil(t, q.QuotedAt)
	assert.Equal(t, now, *q.QuotedAt)

	// Jumps that skip quoted never stamp.
	q = &QuotationRequest{Status: QuotationPending}
	require.NoError(t, q.AdminTransition(QuotationRejected, now))
	assert.Nil(t, q.QuotedAt)
}

func TestQuotation_AdminTransition_UnknownStatusRejected(t *testing.T) {
	q := &QuotationRequest{Status: QuotationPending}

	err := q.AdminTransition(QuotationStatus("archived"), time.Now())

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, QuotationPending, q.Status, "rejected transition must not mutate status")
}

func TestQuotation_Transition_RequesterPathIsTableBound(t *testing.T) {
	q := &QuotationRequest{Status: QuotationQuoted}
	require.NoError(t, q.Transition(QuotationAccepted))
	assert.Equal(t, QuotationAccepted, q.Status)

	q = &QuotationRequest{Status: QuotationPending}
	err := q.Transition(QuotationAccepted)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "pending", transitionErr.Current)
	assert.Contains(t, transitionErr.Attempted, "accepted")
	assert.Equal(t, QuotationPending, q.Status, "rejected transition must not mutate status")
}

func TestQuotation_AdminTransition_SameStatusIsNoop(t *testing.T) {
	q := &QuotationRequest{Status: QuotationQuoted}
	require.NoError(t, q.AdminTransition(QuotationQuoted, time.Now()))
	assert.Nil(t, q.QuotedAt, "no-op transition must not stamp QuotedAt")
}

func TestQuotation_GuardOwnerEdit(t *testing.T) {
	editable := []QuotationStatus{QuotationPending, QuotationReviewing}
	for _, s := range editable {
		q := &QuotationRequest{Status: s}
		assert.NoError(t, q.GuardOwnerEdit(), "status %s", s)
	}

	frozen := []QuotationStatus{
		QuotationQuoted, QuotationAccepted, QuotationRejected, QuotationCompleted, QuotationExpired,
	}
	for _, s := range frozen {
		q := &QuotationRequest{Status: s}
		err := q.GuardOwnerEdit()

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, "status %s", s)
		assert.Equal(t, s.String(), transitionErr.Current)
	}
}

func TestRequester_ExactlyOneIdentityMode(t *testing.T) {
	userID := uuid.New()

	assert.True(t, RegisteredRequester(userID).Valid())
	assert.True(t, GuestRequester("Jane", "jane@example.com", "555-0100").Valid())

	// Neither mode populated.
	assert.False(t, Requester{}.Valid())

	// Both modes populated.
	mixed := Requester{UserID: &userID, GuestName: "Jane", GuestEmail: "jane@example.com"}
	assert.False(t, mixed.Valid())

	// Guest without an email is not identifiable.
	assert.False(t, GuestRequester("Jane", "", "555-0100").Valid())
}

func TestRequester_Ownership(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	registered := RegisteredRequester(owner)
	assert.True(t, registered.OwnedBy(owner))
	assert.False(t, registered.OwnedBy(other))

	guest := GuestRequester("Jane", "jane@example.com", "")
	assert.False(t, guest.OwnedBy(owner), "guest requests are owned by nobody")
}
