package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"slotplanner/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// times_allowed is stored as integer[] minutes since midnight; date as a DATE
// column. Conversion happens here so the domain only sees TimeOfDay and
// CalendarDate values.

func slotsToMinutes(slots []domain.TimeOfDay) []int64 {
	out := make([]int64, len(slots))
	for i, s := range slots {
		out[i] = int64(s.Minutes())
	}
	return out
}

func minutesToSlots(minutes []int64) []domain.TimeOfDay {
	out := make([]domain.TimeOfDay, len(minutes))
	for i, m := range minutes {
		out[i] = domain.TimeOfDayFromMinutes(int(m))
	}
	return out
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, owner_id, join_code, times_allowed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Date.Time(), e.OwnerID, e.JoinCode, pq.Array(slotsToMinutes(e.TimesAllowed)), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Event, error) {
	e := &domain.Event{}
	var date time.Time
	var minutes []int64
	err := row.Scan(&e.ID, &e.Name, &date, &e.OwnerID, &e.JoinCode, pq.Array(&minutes), &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Date = domain.DateOf(date)
	e.TimesAllowed = minutesToSlots(minutes)
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, date, owner_id, join_code, times_allowed, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByJoinCode(ctx context.Context, joinCode string) (*domain.Event, error) {
	code := strings.ToLower(strings.TrimSpace(joinCode))
	query := `
		SELECT id, name, date, owner_id, join_code, times_allowed, created_at, updated_at
		FROM events
		WHERE join_code = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, code))
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, date, owner_id, join_code, times_allowed, created_at, updated_at
		FROM events
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var date time.Time
		var minutes []int64
		if err := rows.Scan(&e.ID, &e.Name, &date, &e.OwnerID, &e.JoinCode, pq.Array(&minutes), &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Date = domain.DateOf(date)
		e.TimesAllowed = minutesToSlots(minutes)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, date = $2, times_allowed = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Date.Time(), pq.Array(slotsToMinutes(e.TimesAllowed)), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
