package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var lifecycle = []BookingStatus{
	BOOKING_INQUIRY,
	BOOKING_PROPOSED,
	BOOKING_CONTRACT_SENT,
	BOOKING_SIGNED,
	BOOKING_INVOICED,
	BOOKING_PAID,
	BOOKING_COMPLETED,
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range lifecycle {
		assert.Truef(t, s.Valid(), "%s should be valid", s)
	}
	assert.True(t, BOOKING_CANCELLED.Valid())
	assert.False(t, BookingStatus("archived").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatusForwardOnly(t *testing.T) {
	for i, from := range lifecycle {
		for j, to := range lifecycle {
			got := from.CanTransition(to)
			if from.Terminal() {
				assert.Falsef(t, got, "%s is terminal, %s -> %s should be rejected", from, from, to)
				continue
			}
			assert.Equalf(t, j > i, got, "%s -> %s", from, to)
		}
	}
}

func TestBookingStatusSkippingStagesAllowed(t *testing.T) {
	assert.True(t, BOOKING_INQUIRY.CanTransition(BOOKING_PAID))
	assert.True(t, BOOKING_PROPOSED.CanTransition(BOOKING_COMPLETED))
}

func TestBookingStatusCancelEscape(t *testing.T) {
	for _, from := range lifecycle {
		if from.Terminal() {
			assert.Falsef(t, from.CanTransition(BOOKING_CANCELLED), "%s -> cancelled", from)
			continue
		}
		assert.Truef(t, from.CanTransition(BOOKING_CANCELLED), "%s -> cancelled", from)
	}
}

func TestBookingStatusTerminalsAbsorbing(t *testing.T) {
	all := append(append([]BookingStatus{}, lifecycle...), BOOKING_CANCELLED)
	for _, terminal := range []BookingStatus{BOOKING_COMPLETED, BOOKING_CANCELLED} {
		assert.True(t, terminal.Terminal())
		for _, to := range all {
			assert.Falsef(t, terminal.CanTransition(to), "%s -> %s", terminal, to)
		}
	}
}

func TestBookingStatusRejectsUnknownStates(t *testing.T) {
	assert.False(t, BookingStatus("archived").CanTransition(BOOKING_PROPOSED))
	assert.False(t, BOOKING_INQUIRY.CanTransition(BookingStatus("archived")))
}

func TestContractStatusSingleStep(t *testing.T) {
	assert.True(t, CONTRACT_DRAFT.CanTransition(CONTRACT_SENT))
	assert.True(t, CONTRACT_SENT.CanTransition(CONTRACT_SIGNED))

	assert.False(t, CONTRACT_DRAFT.CanTransition(CONTRACT_SIGNED))
	assert.False(t, CONTRACT_SENT.CanTransition(CONTRACT_DRAFT))
	assert.False(t, CONTRACT_SIGNED.CanTransition(CONTRACT_DRAFT))
	assert.False(t, CONTRACT_SIGNED.CanTransition(CONTRACT_SENT))
	assert.False(t, CONTRACT_DRAFT.CanTransition(CONTRACT_DRAFT))
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, REQUEST_PENDING.Valid())
	assert.True(t, REQUEST_ACCEPTED.Valid())
	assert.True(t, REQUEST_DECLINED.Valid())
	assert.False(t, RequestStatus("withdrawn").Valid())
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{TASK_TODO, TASK_IN_PROGRESS, TASK_BLOCKED, TASK_DONE} {
		assert.Truef(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, TaskStatus("paused").Valid())
}
