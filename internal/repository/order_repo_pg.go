package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// Create persists the order and all of its tickets in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
	Delete(ctx context.Context, userID, id int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create inserts tickets one by one so that a violation of the seat
// constraint can be attributed to the exact candidate that caused it.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id, created_at) VALUES ($1, $2) RETURNING id`,
		order.UserID, order.CreatedAt).Scan(&order.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		err := tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID)
		if err == nil {
			continue
		}
		if isUniqueViolation(err, ticketSeatConstraint) {
			return &domain.UniquenessError{Index: i, FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
		}
		return fmt.Errorf("insert ticket: %w", mapError(err))
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders WHERE user_id=$1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		var o domain.Order
		err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, err
	}
	if err := r.attachTickets(ctx, r.db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	return r.getByID(ctx, r.db, userID, id)
}

// Delete removes one of the user's orders. Its tickets go with it by cascade,
// which releases their seats.
func (r *PGOrderRepository) Delete(ctx context.Context, userID, id int64) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order, err := r.getByID(ctx, tx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PGOrderRepository) getByID(ctx context.Context, q querier, userID, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := q.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) attachTickets(ctx context.Context, q querier, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
		orders[i].Tickets = make([]domain.Ticket, 0)
	}

	rows, err := q.Query(ctx, `SELECT t.id, t."row", t.seat, t.flight_id, t.order_id, src.name || ' - ' || dst.name
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		WHERE t.order_id = ANY($1)
		ORDER BY t."row", t.seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID, &t.Route); err != nil {
			return err
		}
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
