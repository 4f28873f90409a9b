package bookingtype

import "time"

// BookingType is a priced service offering owned by a coach. Deactivation is
// a soft delete; rows are never removed.
type BookingType struct {
	ID             int       `db:"id" json:"id"`
	CoachID        int       `db:"coach_id" json:"coach_id"`
	Name           string    `db:"name" json:"name"`
	Description    *string   `db:"description" json:"description,omitempty"`
	BasePriceCents int64     `db:"base_price_cents" json:"base_price_cents"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreateBookingTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	BasePriceCents int64   `json:"base_price_cents" binding:"required,gt=0"`
}

type UpdateBookingTypeRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	BasePriceCents *int64  `json:"base_price_cents" binding:"omitempty,gt=0"`
}
