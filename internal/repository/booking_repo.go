package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jaggery_shop/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type postgresBookingRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresBookingRepository(db *sql.DB, logger *logrus.Logger) domain.BookingRepository {
	return &postgresBookingRepository{db: db, log: logger}
}

const bookingColumns = `b.id, b.user_id, COALESCE(b.phone, ''), b.truck_label, b.weight_viss,
        b.price, b.goods_description, b.origin, b.destination, b.pickup_date,
        COALESCE(b.pickup_time, ''), b.status, b.created_at, b.updated_at`

func (r *postgresBookingRepository) Create(ctx context.Context, booking *domain.TransportBooking) (*domain.TransportBooking, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}

	query := `
        INSERT INTO transport_bookings
            (id, user_id, phone, truck_label, weight_viss, price,
             goods_description, origin, destination, pickup_date, pickup_time, status)
        VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		booking.ID, booking.UserID, booking.Phone, booking.TruckLabel,
		booking.WeightViss, booking.Price, booking.GoodsDescription,
		booking.Origin, booking.Destination, booking.PickupDate,
		booking.PickupTime, booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repo: failed to create booking for user %s: %v", booking.UserID, err)
		return nil, fmt.Errorf("could not create booking: %w", err)
	}

	r.log.Infof("Repo: transport booking %s created for user %s (%d viss, price %.0f)",
		booking.ID, booking.UserID, booking.WeightViss, booking.Price)
	return booking, nil
}

func (r *postgresBookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.TransportBooking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repo: booking query failed: %v", err)
		return nil, fmt.Errorf("could not retrieve bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.TransportBooking{}
	for rows.Next() {
		b := domain.TransportBooking{User: &domain.UserSummary{}}
		err := rows.Scan(
			&b.ID, &b.UserID, &b.Phone, &b.TruckLabel, &b.WeightViss,
			&b.Price, &b.GoodsDescription, &b.Origin, &b.Destination,
			&b.PickupDate, &b.PickupTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&b.User.Name, &b.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}

func (r *postgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.TransportBooking, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM transport_bookings b
        JOIN users u ON u.id = b.user_id
        WHERE b.id = $1
    `, bookingColumns)

	bookings, err := r.queryBookings(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNotFound
	}
	return &bookings[0], nil
}

func (r *postgresBookingRepository) ListByUserID(ctx context.Context, userID string) ([]domain.TransportBooking, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM transport_bookings b
        JOIN users u ON u.id = b.user_id
        WHERE b.user_id = $1
        ORDER BY b.created_at DESC
    `, bookingColumns)

	return r.queryBookings(ctx, query, userID)
}

func (r *postgresBookingRepository) ListAll(ctx context.Context) ([]domain.TransportBooking, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM transport_bookings b
        JOIN users u ON u.id = b.user_id
        ORDER BY b.created_at DESC
    `, bookingColumns)

	return r.queryBookings(ctx, query)
}

func (r *postgresBookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.TransportBooking, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM transport_bookings b
        JOIN users u ON u.id = b.user_id
        ORDER BY b.created_at DESC
        LIMIT $1
    `, bookingColumns)

	return r.queryBookings(ctx, query, limit)
}

func (r *postgresBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.TransportBooking, error) {
	query := `
        UPDATE transport_bookings
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id
    `
	var updatedID string
	err := r.db.QueryRowContext(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: booking %s not found for status update", id)
			return nil, ErrNotFound
		}
		if pqCode(err) == pqCheckViolation {
			return nil, fmt.Errorf("invalid booking status provided: %s", status)
		}
		r.log.Errorf("Repo: failed to update status for booking %s: %v", id, err)
		return nil, fmt.Errorf("could not update booking status: %w", err)
	}

	r.log.Infof("Repo: booking %s status updated to %s", id, status)
	return r.GetByID(ctx, updatedID)
}

func (r *postgresBookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transport_bookings WHERE id = $1", id)
	if err != nil {
		r.log.Errorf("Repo: failed to delete booking %s: %v", id, err)
		return fmt.Errorf("could not delete booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.log.Infof("Repo: booking %s deleted", id)
	return nil
}

func (r *postgresBookingRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transport_bookings").Scan(&total); err != nil {
		return 0, fmt.Errorf("could not count bookings: %w", err)
	}
	return total, nil
}
