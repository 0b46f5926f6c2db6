package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festapass/pricing-service/internal/domain"
)

// PostgresAvailabilityRepository implements AvailabilityRepository using PostgreSQL
type PostgresAvailabilityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAvailabilityRepository creates a new PostgresAvailabilityRepository
func NewPostgresAvailabilityRepository(pool *pgxpool.Pool) *PostgresAvailabilityRepository {
	return &PostgresAvailabilityRepository{pool: pool}
}

// ListByEvent returns all live availability signals for an event
func (r *PostgresAvailabilityRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.AvailabilitySignal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, event_date_id, ticket_type_id, tickets_amount,
			is_last_tickets, created_at, updated_at, deleted_at
		FROM availability_signals
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []*domain.AvailabilitySignal
	for rows.Next() {
		s := &domain.AvailabilitySignal{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.EventDateID, &s.TicketTypeID,
			&s.TicketsAmount, &s.IsLastTickets, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// Upsert inserts or replaces the signal for its (event, date, type) key.
// COALESCE in the conflict target folds the nil sentinel into a stable key so
// each aggregate level keeps exactly one row.
func (r *PostgresAvailabilityRepository) Upsert(ctx context.Context, signal *domain.AvailabilitySignal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO availability_signals
			(id, event_id, event_date_id, ticket_type_id, tickets_amount, is_last_tickets, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (event_id, COALESCE(event_date_id, ''), COALESCE(ticket_type_id, ''))
		DO UPDATE SET
			tickets_amount = EXCLUDED.tickets_amount,
			is_last_tickets = EXCLUDED.is_last_tickets,
			updated_at = NOW(),
			deleted_at = NULL
	`, signal.ID, signal.EventID, signal.EventDateID, signal.TicketTypeID,
		signal.TicketsAmount, signal.IsLastTickets)
	return err
}
