package bookings

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

// BlockingStatuses are the states in which a reservation holds its window
// against competing claims. Mirrored by the reservations_no_overlap
// exclusion constraint.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed, StatusActive}

func IsBlocking(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusActive
}
