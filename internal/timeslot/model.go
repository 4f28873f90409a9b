package timeslot

import "time"

// TimeSlot is a bookable calendar interval owned by a coach. is_available
// flips to false while an active session holds the slot.
type TimeSlot struct {
	ID          int       `db:"id" json:"id"`
	CoachID     int       `db:"coach_id" json:"coach_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	DurationMin int       `db:"duration_min" json:"duration_min"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateTimeSlotRequest struct {
	StartTime   string `json:"start_time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,min=15,max=480"`
}

type UpdateTimeSlotRequest struct {
	StartTime   *string `json:"start_time"`
	DurationMin *int    `json:"duration_min" binding:"omitempty,min=15,max=480"`
	IsAvailable *bool   `json:"is_available"`
}

// Filters bounds slot listings. When Start is nil, available-slot queries
// default to now so past slots never surface.
type Filters struct {
	CoachID *int
	Start   *time.Time
	End     *time.Time
}
