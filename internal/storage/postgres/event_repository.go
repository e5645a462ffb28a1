package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	start, err := boundParam(event.StartTime)
	if err != nil {
		return err
	}
	end, err := boundParam(event.EndTime)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO events (id, name, start_time, end_time)
VALUES ($1, $2, $3, $4)`
	_, err = r.pool.Exec(ctx, stmt, event.ID, event.Name, start, end)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrEventAlreadyExists
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidTimeRange
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, start_time, end_time
FROM events
ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			event      domain.Event
			start, end *time.Time
		)
		if err := rows.Scan(&event.ID, &event.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.StartTime = domain.FormatTimestamp(start)
		event.EndTime = domain.FormatTimestamp(end)
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	const stmt = `DELETE FROM events WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func boundParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, ok := domain.ParseTimestamp(raw)
	if !ok {
		return nil, domain.ErrInvalidTimestamp
	}
	return &t, nil
}
