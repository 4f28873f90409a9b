package timeslot

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAvailable(ctx context.Context, f Filters) ([]TimeSlot, error) {
	query := `
		SELECT id, coach_id, start_time, duration_min, is_available, created_at
		FROM time_slots
		WHERE is_available = TRUE
	`
	args := []interface{}{}
	idx := 1

	if f.CoachID != nil {
		query += ` AND coach_id = $` + strconv.Itoa(idx)
		args = append(args, *f.CoachID)
		idx++
	}

	start := time.Now()
	if f.Start != nil {
		start = *f.Start
	}
	query += ` AND start_time >= $` + strconv.Itoa(idx)
	args = append(args, start)
	idx++

	if f.End != nil {
		query += ` AND start_time <= $` + strconv.Itoa(idx)
		args = append(args, *f.End)
		idx++
	}

	query += ` ORDER BY start_time ASC`

	var slots []TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListByCoach(ctx context.Context, coachID int, f Filters) ([]TimeSlot, error) {
	query := `
		SELECT id, coach_id, start_time, duration_min, is_available, created_at
		FROM time_slots
		WHERE coach_id = $1
	`
	args := []interface{}{coachID}
	idx := 2

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

	query += ` ORDER BY start_time ASC`

	var slots []TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*TimeSlot, error) {
	query := `
		SELECT id, coach_id, start_time, duration_min, is_available, created_at
		FROM time_slots
		WHERE id = $1
	`

	var slot TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) Create(ctx context.Context, coachID int, slot *TimeSlot) (*TimeSlot, error) {
	query := `
		INSERT INTO time_slots (coach_id, start_time, duration_min)
		VALUES ($1, $2, $3)
		RETURNING id, coach_id, start_time, duration_min, is_available, created_at
	`

	var created TimeSlot
	err := r.db.GetContext(ctx, &created, query, coachID, slot.StartTime, slot.DurationMin)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, slot *TimeSlot) (*TimeSlot, error) {
	query := `
		UPDATE time_slots
		SET start_time = $1, duration_min = $2, is_available = $3
		WHERE id = $4
		RETURNING id, coach_id, start_time, duration_min, is_available, created_at
	`

	var updated TimeSlot
	err := r.db.GetContext(ctx, &updated, query,
		slot.StartTime, slot.DurationMin, slot.IsAvailable, slot.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	return err
}

func (r *repository) SetAvailability(ctx context.Context, id int, available bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE time_slots SET is_available = $1 WHERE id = $2`,
		available, id)
	return err
}
