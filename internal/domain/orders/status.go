package orders

// Status represents the status of an order.
//
// Unlike the free-form status column this replaces, transitions are enforced
// through the table in CanTransitionTo: call outcomes (no_answer, postponed)
// orbit the pending/confirmed side, cancelled and refunded are terminal, and
// a delivered order can still be refunded (post-delivery return).
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
	StatusNoAnswer   Status = "no_answer"
	StatusPostponed  Status = "postponed"
)

// AllStatuses returns every valid order status
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded, StatusNoAnswer,
		StatusPostponed,
	}
}

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded, StatusNoAnswer,
		StatusPostponed:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// no_answer and postponed are call outcomes, reachable whenever the order
// still awaits a call: from pending and from confirmed.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusNoAnswer ||
			target == StatusPostponed || target == StatusCancelled
	case StatusNoAnswer:
		return target == StatusConfirmed || target == StatusPostponed ||
			target == StatusCancelled
	case StatusPostponed:
		return target == StatusConfirmed || target == StatusNoAnswer ||
			target == StatusCancelled
	case StatusConfirmed:
		return target == StatusProcessing || target == StatusNoAnswer ||
			target == StatusPostponed || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered || target == StatusRefunded
	case StatusDelivered:
		return target == StatusRefunded
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// CountsAsSold reports whether orders in this status contribute to sold
// quantities in the inventory summary
func (s Status) CountsAsSold() bool {
	return s == StatusShipped || s == StatusDelivered
}

// Labels maps each status to its Arabic display label. Kept in one place so
// every surface renders the same wording.
var Labels = map[Status]string{
	StatusPending:    "قيد الانتظار",
	StatusConfirmed:  "مؤكد",
	StatusProcessing: "قيد التجهيز",
	StatusShipped:    "تم الشحن",
	StatusDelivered:  "تم التوصيل",
	StatusCancelled:  "ملغي",
	StatusRefunded:   "مرتجع",
	StatusNoAnswer:   "لا يرد",
	StatusPostponed:  "مؤجل",
}

// Label returns the Arabic display label for the status
func (s Status) Label() string {
	if label, ok := Labels[s]; ok {
		return label
	}
	return string(s)
}
