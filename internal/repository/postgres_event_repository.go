package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festapass/pricing-service/internal/domain"
)

// eventColumns defines columns for the events table
const eventColumns = `id, organizer_id, name, slug, COALESCE(description, '') as description,
	status, is_free, is_client_taxed, price_cents, COALESCE(max_tickets_per_buy, 0) as max_tickets_per_buy,
	published_at, created_at, updated_at, deleted_at`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// scanEvent scans a row into an Event struct
func (r *PostgresEventRepository) scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Slug,
		&event.Description,
		&event.Status,
		&event.IsFree,
		&event.IsClientTaxed,
		&event.PriceCents,
		&event.MaxTicketsPerBuy,
		&event.PublishedAt,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create inserts the event and its full pricing graph in one transaction
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, organizer_id, name, slug, description, status,
			is_free, is_client_taxed, price_cents, max_tickets_per_buy,
			published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		event.ID, event.OrganizerID, event.Name, event.Slug, event.Description,
		event.Status, event.IsFree, event.IsClientTaxed, event.PriceCents,
		event.MaxTicketsPerBuy, event.PublishedAt, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, tt := range event.TicketTypes {
		_, err = tx.Exec(ctx, `
			INSERT INTO ticket_types (id, event_id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, tt.ID, event.ID, tt.Name, tt.Description, tt.CreatedAt, tt.UpdatedAt)
		if err != nil {
			return err
		}
	}

	for _, b := range event.Batches {
		_, err = tx.Exec(ctx, `
			INSERT INTO event_batches (id, event_id, name, start_date, end_date,
				is_active, price_cents, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, b.ID, event.ID, b.Name, b.StartDate, b.EndDate, b.IsActive, b.PriceCents,
			b.CreatedAt, b.UpdatedAt)
		if err != nil {
			return err
		}
		for _, bt := range b.TicketTypes {
			_, err = tx.Exec(ctx, `
				INSERT INTO event_batch_ticket_types (id, batch_id, ticket_type_id, price_cents, amount)
				VALUES ($1, $2, $3, $4, $5)
			`, bt.ID, b.ID, bt.TicketTypeID, bt.PriceCents, bt.Amount)
			if err != nil {
				return err
			}
		}
	}

	for _, d := range event.Dates {
		_, err = tx.Exec(ctx, `
			INSERT INTO event_dates (id, event_id, date, hour_start, hour_end,
				has_specific_price, price_cents, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, d.ID, event.ID, d.Date, d.HourStart, d.HourEnd, d.HasSpecificPrice,
			d.PriceCents, d.CreatedAt, d.UpdatedAt)
		if err != nil {
			return err
		}
		for _, tp := range d.TicketTypePrices {
			_, err = tx.Exec(ctx, `
				INSERT INTO event_date_ticket_type_prices (id, event_date_id, ticket_type_id, price_cents)
				VALUES ($1, $2, $3, $4)
			`, tp.ID, d.ID, tp.TicketTypeID, tp.PriceCents)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an event with its full pricing graph
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND deleted_at IS NULL`
	event, err := r.scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil || event == nil {
		return event, err
	}
	if err := r.loadGraph(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetBySlug retrieves an event by slug with its full pricing graph
func (r *PostgresEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1 AND deleted_at IS NULL`
	event, err := r.scanEvent(r.pool.QueryRow(ctx, query, slug))
	if err != nil || event == nil {
		return event, err
	}
	if err := r.loadGraph(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List lists events with filters and pagination. List rows carry the event
// header only; callers needing the pricing graph fetch by ID.
func (r *PostgresEventRepository) List(ctx context.Context, filter *EventFilter, limit, offset int) ([]*domain.Event, int, error) {
	whereClause := "deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.Status != "" {
			whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
			args = append(args, filter.Status)
			argIndex++
		}
		if filter.OrganizerID != "" {
			whereClause += fmt.Sprintf(" AND organizer_id = $%d", argIndex)
			args = append(args, filter.OrganizerID)
			argIndex++
		}
		if filter.Search != "" {
			whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
			args = append(args, "%"+filter.Search+"%")
			argIndex++
		}
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, eventColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	return events, total, rows.Err()
}

// Update updates the event header fields
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $2, slug = $3, description = $4, status = $5,
			is_client_taxed = $6, max_tickets_per_buy = $7,
			published_at = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`,
		event.ID, event.Name, event.Slug, event.Description, event.Status,
		event.IsClientTaxed, event.MaxTicketsPerBuy, event.PublishedAt, event.UpdatedAt,
	)
	return err
}

// Delete soft deletes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return err
}

// SlugExists checks whether a slug is already taken
func (r *PostgresEventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1 AND deleted_at IS NULL)
	`, slug).Scan(&exists)
	return exists, err
}

// loadGraph attaches ticket types, batches and dates to the event
func (r *PostgresEventRepository) loadGraph(ctx context.Context, event *domain.Event) error {
	if err := r.loadTicketTypes(ctx, event); err != nil {
		return err
	}
	if err := r.loadBatches(ctx, event); err != nil {
		return err
	}
	return r.loadDates(ctx, event)
}

func (r *PostgresEventRepository) loadTicketTypes(ctx context.Context, event *domain.Event) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, name, COALESCE(description, '') as description, created_at, updated_at
		FROM ticket_types WHERE event_id = $1 ORDER BY created_at ASC
	`, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		tt := &domain.TicketType{}
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Description, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
			return err
		}
		event.TicketTypes = append(event.TicketTypes, tt)
	}
	return rows.Err()
}

func (r *PostgresEventRepository) loadBatches(ctx context.Context, event *domain.Event) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, name, start_date, end_date, is_active, price_cents, created_at, updated_at
		FROM event_batches WHERE event_id = $1 ORDER BY start_date ASC
	`, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		b := &domain.EventBatch{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.StartDate, &b.EndDate, &b.IsActive, &b.PriceCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}
		event.Batches = append(event.Batches, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range event.Batches {
		btRows, err := r.pool.Query(ctx, `
			SELECT id, batch_id, ticket_type_id, price_cents, amount
			FROM event_batch_ticket_types WHERE batch_id = $1
		`, b.ID)
		if err != nil {
			return err
		}
		for btRows.Next() {
			bt := &domain.BatchTicketTypePrice{}
			if err := btRows.Scan(&bt.ID, &bt.BatchID, &bt.TicketTypeID, &bt.PriceCents, &bt.Amount); err != nil {
				btRows.Close()
				return err
			}
			b.TicketTypes = append(b.TicketTypes, bt)
		}
		btRows.Close()
		if err := btRows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresEventRepository) loadDates(ctx context.Context, event *domain.Event) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, date, COALESCE(hour_start, '') as hour_start,
			COALESCE(hour_end, '') as hour_end, has_specific_price, price_cents,
			created_at, updated_at
		FROM event_dates WHERE event_id = $1 ORDER BY date ASC
	`, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		d := &domain.EventDate{}
		if err := rows.Scan(&d.ID, &d.EventID, &d.Date, &d.HourStart, &d.HourEnd, &d.HasSpecificPrice, &d.PriceCents, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return err
		}
		event.Dates = append(event.Dates, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, d := range event.Dates {
		tpRows, err := r.pool.Query(ctx, `
			SELECT id, event_date_id, ticket_type_id, price_cents
			FROM event_date_ticket_type_prices WHERE event_date_id = $1
		`, d.ID)
		if err != nil {
			return err
		}
		for tpRows.Next() {
			tp := &domain.DateTicketTypePrice{}
			if err := tpRows.Scan(&tp.ID, &tp.EventDateID, &tp.TicketTypeID, &tp.PriceCents); err != nil {
				tpRows.Close()
				return err
			}
			d.TicketTypePrices = append(d.TicketTypePrices, tp)
		}
		tpRows.Close()
		if err := tpRows.Err(); err != nil {
			return err
		}
	}
	return nil
}
