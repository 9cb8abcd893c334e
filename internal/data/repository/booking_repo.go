package repository

import (
	"context"
	"fmt"

	"event-booking/internal/data/entity"
	"event-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*entity.Booking, error)
	FindByUserWithEvents(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error)
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, event_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.EventID,
		booking.UserID,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("event_id", booking.EventID.String()),
			zap.String("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking for event %s: %w", booking.EventID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.EventID,
		&booking.UserID,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*entity.Booking, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM bookings
		WHERE event_id = $1 AND user_id = $2
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, eventID, userID).Scan(
		&booking.ID,
		&booking.EventID,
		&booking.UserID,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by event and user",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find booking for event %s and user %s: %w", eventID.String(), userID, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserWithEvents(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.created_at,
		       e.id, e.title, e.description, e.location, e.latitude, e.longitude,
		       e.date, e.owner_id, e.max_guests, e.booked_count, e.image_url, e.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.BookingWithEvent
	for rows.Next() {
		var bw entity.BookingWithEvent
		err := rows.Scan(
			&bw.ID,
			&bw.EventID,
			&bw.UserID,
			&bw.CreatedAt,
			&bw.Event.ID,
			&bw.Event.Title,
			&bw.Event.Description,
			&bw.Event.Location,
			&bw.Event.Latitude,
			&bw.Event.Longitude,
			&bw.Event.Date,
			&bw.Event.OwnerID,
			&bw.Event.MaxGuests,
			&bw.Event.BookedCount,
			&bw.Event.ImageURL,
			&bw.Event.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &bw)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE event_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, eventID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("count bookings by event ID %s: %w", eventID.String(), err)
	}

	return count, nil
}

// Delete matches on both id and user_id, so a caller can only remove its
// own booking row.
func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query := `DELETE FROM bookings WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
