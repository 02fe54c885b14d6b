package types

// BookingStatus is the lifecycle state of a Booking. Transitions are forward-only
// along the lifecycle order, with cancellation as the escape valve from any
// non-terminal state.
type BookingStatus string

const (
	BOOKING_INQUIRY       BookingStatus = "inquiry"
	BOOKING_PROPOSED      BookingStatus = "proposed"
	BOOKING_CONTRACT_SENT BookingStatus = "contract_sent"
	BOOKING_SIGNED        BookingStatus = "signed"
	BOOKING_INVOICED      BookingStatus = "invoiced"
	BOOKING_PAID          BookingStatus = "paid"
	BOOKING_COMPLETED     BookingStatus = "completed"
	BOOKING_CANCELLED     BookingStatus = "cancelled"
)

var bookingStatusOrder = map[BookingStatus]int{
	BOOKING_INQUIRY:       0,
	BOOKING_PROPOSED:      1,
	BOOKING_CONTRACT_SENT: 2,
	BOOKING_SIGNED:        3,
	BOOKING_INVOICED:      4,
	BOOKING_PAID:          5,
	BOOKING_COMPLETED:     6,
}

func (s BookingStatus) Valid() bool {
	if s == BOOKING_CANCELLED {
		return true
	}
	_, ok := bookingStatusOrder[s]
	return ok
}

// Terminal reports whether the status is absorbing. No operation may change
// the status of a completed or cancelled booking.
func (s BookingStatus) Terminal() bool {
	return s == BOOKING_COMPLETED || s == BOOKING_CANCELLED
}

// CanTransition reports whether a booking in status s may move to status to.
// Forward moves of any distance are allowed so an admin can record stages
// that happened offline, but never backwards, never out of a terminal state.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	if !s.Valid() || !to.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if to == BOOKING_CANCELLED {
		return true
	}
	return bookingStatusOrder[to] > bookingStatusOrder[s]
}

type RequestStatus string

const (
	REQUEST_PENDING  RequestStatus = "pending"
	REQUEST_ACCEPTED RequestStatus = "accepted"
	REQUEST_DECLINED RequestStatus = "declined"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case REQUEST_PENDING, REQUEST_ACCEPTED, REQUEST_DECLINED:
		return true
	}
	return false
}

type ContractStatus string

const (
	CONTRACT_DRAFT  ContractStatus = "draft"
	CONTRACT_SENT   ContractStatus = "sent"
	CONTRACT_SIGNED ContractStatus = "signed"
)

var contractStatusOrder = map[ContractStatus]int{
	CONTRACT_DRAFT:  0,
	CONTRACT_SENT:   1,
	CONTRACT_SIGNED: 2,
}

func (s ContractStatus) Valid() bool {
	_, ok := contractStatusOrder[s]
	return ok
}

// CanTransition enforces the draft -> sent -> signed escalation, one step at
// a time, never regressing.
func (s ContractStatus) CanTransition(to ContractStatus) bool {
	if !s.Valid() || !to.Valid() {
		return false
	}
	return contractStatusOrder[to] == contractStatusOrder[s]+1
}

type SignatureStatus string

const (
	SIGNATURE_PENDING SignatureStatus = "pending"
	SIGNATURE_SIGNED  SignatureStatus = "signed"
)

type TaskStatus string

const (
	TASK_TODO        TaskStatus = "todo"
	TASK_IN_PROGRESS TaskStatus = "in_progress"
	TASK_BLOCKED     TaskStatus = "blocked"
	TASK_DONE        TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TASK_TODO, TASK_IN_PROGRESS, TASK_BLOCKED, TASK_DONE:
		return true
	}
	return false
}

type BookingCategory string

const (
	CATEGORY_MODELING   BookingCategory = "modeling"
	CATEGORY_ACTING     BookingCategory = "acting"
	CATEGORY_COMMERCIAL BookingCategory = "commercial"
	CATEGORY_EVENT      BookingCategory = "event"
	CATEGORY_GENERAL    BookingCategory = "general"
)
