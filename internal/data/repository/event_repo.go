package repository

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Event, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Counter maintenance for the booking usecase
	IncrementBookedCount(ctx context.Context, id uuid.UUID) (bool, error)
	DecrementBookedCount(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, title, description, location, latitude, longitude, date, owner_id, max_guests, booked_count, image_url, created_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Latitude,
		&event.Longitude,
		&event.Date,
		&event.OwnerID,
		&event.MaxGuests,
		&event.BookedCount,
		&event.ImageURL,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, description, location, latitude, longitude, date, owner_id, max_guests, booked_count, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Latitude,
		event.Longitude,
		event.Date,
		event.OwnerID,
		event.MaxGuests,
		event.BookedCount,
		event.ImageURL,
		event.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
			zap.String("owner_id", event.OwnerID),
		)
		return fmt.Errorf("create event %s: %w", event.ID.String(), err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date >= $1
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		r.log.Error("Failed to find upcoming events", zap.Error(err))
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *eventRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find events by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("find events by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	// owner_id and booked_count are never touched here; the counter belongs
	// to the booking usecase
	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, latitude = $5, longitude = $6,
		    date = $7, max_guests = $8, image_url = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Latitude,
		event.Longitude,
		event.Date,
		event.MaxGuests,
		event.ImageURL,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	return nil
}

// Delete removes the event and its bookings in one transaction, so a deleted
// event never leaves orphaned bookings behind.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete event %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		r.log.Error("Failed to delete bookings for event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete bookings for event %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete event %s: %w", id.String(), err)
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

// IncrementBookedCount bumps the counter only while capacity remains. A false
// return means the event was full (or missing) at write time, so two racing
// bookings cannot push booked_count past max_guests.
func (r *eventRepository) IncrementBookedCount(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE events
		SET booked_count = booked_count + 1
		WHERE id = $1 AND booked_count < max_guests
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment booked count",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return false, fmt.Errorf("increment booked count for event %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// DecrementBookedCount lowers the counter, clamped at zero even if the
// counter had already drifted.
func (r *eventRepository) DecrementBookedCount(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE events
		SET booked_count = booked_count - 1
		WHERE id = $1 AND booked_count > 0
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to decrement booked count",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("decrement booked count for event %s: %w", id.String(), err)
	}

	return nil
}
