package discount

import "time"

// Discount is a promotional code scoped to a coach. A code applies only
// while it is active, unexpired, and under its usage cap.
type Discount struct {
	ID         int       `db:"id" json:"id"`
	CoachID    int       `db:"coach_id" json:"coach_id"`
	Code       string    `db:"code" json:"code"`
	PercentOff int       `db:"percent_off" json:"percent_off"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	MaxUsage   int       `db:"max_usage" json:"max_usage"`
	UseCount   int       `db:"use_count" json:"use_count"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Usable reports whether the code can still apply a reduction.
func (d *Discount) Usable(now time.Time) bool {
	return d.IsActive && d.ExpiresAt.After(now) && d.UseCount < d.MaxUsage
}

type CreateDiscountRequest struct {
	Code       string `json:"code" binding:"required"`
	PercentOff int    `json:"percent_off" binding:"required,min=1,max=100"`
	ExpiresAt  string `json:"expires_at" binding:"required"`
	MaxUsage   int    `json:"max_usage" binding:"required,min=1"`
}

type UpdateDiscountRequest struct {
	PercentOff *int    `json:"percent_off" binding:"omitempty,min=1,max=100"`
	ExpiresAt  *string `json:"expires_at"`
	MaxUsage   *int    `json:"max_usage" binding:"omitempty,min=1"`
	IsActive   *bool   `json:"is_active"`
}

type PreviewRequest struct {
	Code          string `json:"code" binding:"required"`
	BookingTypeID int    `json:"booking_type_id" binding:"required"`
}

type PreviewResponse struct {
	Code            string `json:"code"`
	Valid           bool   `json:"valid"`
	BasePriceCents  int64  `json:"base_price_cents"`
	FinalPriceCents int64  `json:"final_price_cents"`
}
