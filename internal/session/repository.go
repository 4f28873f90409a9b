package session

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrSlotTaken       = errors.New("time slot is no longer available")
	ErrSlotInPast      = errors.New("cannot book a slot in the past")
	ErrCoachMismatch   = errors.New("booking type and time slot belong to different coaches")
	ErrNotCancellable  = errors.New("session is not in a cancellable state")
	ErrSessionNotFound = errors.New("session not found")
)

const sessionColumns = `id, user_id, coach_id, booking_type_id, time_slot_id,
		start_time, status, is_paid, notes, discount_code, created_at, updated_at`

type lockedSlot struct {
	ID          int       `db:"id"`
	CoachID     int       `db:"coach_id"`
	StartTime   time.Time `db:"start_time"`
	IsAvailable bool      `db:"is_available"`
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Book(ctx context.Context, p BookParams) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var slot lockedSlot
	err = tx.QueryRowxContext(ctx, `
		SELECT id, coach_id, start_time, is_available
		FROM time_slots
		WHERE id = $1
		FOR UPDATE
	`, p.TimeSlotID).StructScan(&slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if slot.CoachID != p.CoachID {
		return nil, ErrCoachMismatch
	}
	if !slot.IsAvailable {
		return nil, ErrSlotTaken
	}
	if slot.StartTime.Before(time.Now()) {
		return nil, ErrSlotInPast
	}

	var created Session
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO sessions (user_id, coach_id, booking_type_id, time_slot_id, start_time, status, notes, discount_code)
		VALUES ($1, $2, $3, $4, $5, 'scheduled', $6, $7)
		RETURNING `+sessionColumns+`
	`, p.UserID, slot.CoachID, p.BookingTypeID, slot.ID, slot.StartTime, p.Notes, p.DiscountCode).StructScan(&created)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE time_slots SET is_available = FALSE WHERE id = $1`, slot.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	var s Session
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, f Filters) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.UserID != nil {
		query += ` AND user_id = $` + strconv.Itoa(idx)
		args = append(args, *f.UserID)
		idx++
	}
	if f.CoachID != nil {
		query += ` AND coach_id = $` + strconv.Itoa(idx)
		args = append(args, *f.CoachID)
		idx++
	}
	if f.Status != nil {
		query += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, *f.Status)
		idx++
	}
	if f.Start != nil {
		query += ` AND start_time >= $` + strconv.Itoa(idx)
		args = append(args, *f.Start)
		idx++
	}
	if f.End != nil {
		query += ` AND start_time <= $` + strconv.Itoa(idx)
		args = append(args, *f.End)
		idx++
	}

	query += ` ORDER BY start_time DESC`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) Update(ctx context.Context, s *Session) (*Session, error) {
	query := `
		UPDATE sessions
		SET status = $1, is_paid = $2, notes = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + sessionColumns

	var updated Session
	err := r.db.GetContext(ctx, &updated, query, s.Status, s.IsPaid, s.Notes, s.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Cancel(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var timeSlotID int
	err = tx.QueryRowxContext(ctx, `
		UPDATE sessions
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('scheduled', 'confirmed')
		RETURNING time_slot_id
	`, id).Scan(&timeSlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotCancellable
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE time_slots SET is_available = TRUE WHERE id = $1`, timeSlotID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	query := `
		SELECT
		  TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS day,
		  COUNT(*) FILTER (WHERE status <> 'cancelled') AS booked,
		  COUNT(*) FILTER (WHERE status = 'cancelled')  AS cancelled
		FROM sessions
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY DATE(created_at)
		ORDER BY day
	`

	var stats []StatsByDay
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) StatsByCoach(ctx context.Context, from, to time.Time) ([]StatsByCoach, error) {
	query := `
		SELECT
		  a.id   AS coach_id,
		  a.name AS coach_name,
		  COUNT(s.*) FILTER (WHERE s.status <> 'cancelled') AS booked,
		  COUNT(s.*) FILTER (WHERE s.status = 'cancelled')  AS cancelled
		FROM accounts a
		JOIN sessions s ON s.coach_id = a.id
		WHERE s.created_at BETWEEN $1 AND $2
		GROUP BY a.id, a.name
		ORDER BY a.id
	`

	var stats []StatsByCoach
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}
