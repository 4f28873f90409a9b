package session

import "time"

// Session statuses. scheduled -> confirmed -> completed, with cancellation
// allowed from scheduled or confirmed. cancelled and completed are terminal.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// validTransitions is the full forward-only status machine.
var validTransitions = map[string][]string{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a session may move from one status to
// another. Terminal statuses allow nothing.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Session binds a user, a coach, a booking type, and a time slot. The
// discount code is stored verbatim at booking time without being validated;
// it is checked only when the coach marks the session paid.
type Session struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	CoachID       int       `db:"coach_id" json:"coach_id"`
	BookingTypeID int       `db:"booking_type_id" json:"booking_type_id"`
	TimeSlotID    int       `db:"time_slot_id" json:"time_slot_id"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	Status        string    `db:"status" json:"status"`
	IsPaid        bool      `db:"is_paid" json:"is_paid"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	DiscountCode  *string   `db:"discount_code" json:"discount_code,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateSessionRequest struct {
	BookingTypeID int     `json:"booking_type_id" binding:"required"`
	TimeSlotID    int     `json:"time_slot_id" binding:"required"`
	Notes         *string `json:"notes"`
	DiscountCode  *string `json:"discount_code"`
}

type UpdateSessionRequest struct {
	Notes  *string `json:"notes"`
	Status *string `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	IsPaid *bool   `json:"is_paid"`
}

// Filters bounds session listings. UserID/CoachID are set from the caller's
// role, never from request input.
type Filters struct {
	UserID  *int
	CoachID *int
	Status  *string
	Start   *time.Time
	End     *time.Time
}

type StatsByDay struct {
	Day       string `db:"day" json:"day"`
	Booked    int    `db:"booked" json:"booked"`
	Cancelled int    `db:"cancelled" json:"cancelled"`
}

type StatsByCoach struct {
	CoachID   int    `db:"coach_id" json:"coach_id"`
	CoachName string `db:"coach_name" json:"coach_name"`
	Booked    int    `db:"booked" json:"booked"`
	Cancelled int    `db:"cancelled" json:"cancelled"`
}
