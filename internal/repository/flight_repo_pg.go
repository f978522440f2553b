package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetAirplane(ctx context.Context, flightID int64) (*domain.Airplane, error)
	TakenSeats(ctx context.Context, flightID int64) ([]domain.Seat, error)
	CountTickets(ctx context.Context, flightID int64) (int, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// List returns flight summaries. tickets_available is derived from the
// airplane grid and the ticket count at query time and is never stored.
func (r *PGFlightRepository) List(ctx context.Context, page domain.Page) ([]domain.FlightSummary, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, src.name || ' - ' || dst.name, a.name, f.departure_time, f.arrival_time,
			a.rows::bigint * a.seats_in_row - (SELECT count(*) FROM tickets t WHERE t.flight_id = f.id),
			COALESCE((SELECT array_agg(c.first_name || ' ' || c.last_name ORDER BY c.id)
				FROM flight_crews fc JOIN crews c ON c.id = fc.crew_id
				WHERE fc.flight_id = f.id), '{}')
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		ORDER BY f.id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		var f domain.FlightSummary
		if err := rows.Scan(&f.ID, &f.Route, &f.Airplane, &f.DepartureTime, &f.ArrivalTime, &f.TicketsAvailable, &f.Crew); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
			COALESCE((SELECT array_agg(fc.crew_id ORDER BY fc.crew_id) FROM flight_crews fc WHERE fc.flight_id = f.id), '{}')
		FROM flights f WHERE f.id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.CrewIDs); err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *PGFlightRepository) GetAirplane(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE f.id=$1`, flightID)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneTypeName); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGFlightRepository) TakenSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGFlightRepository) CountTickets(ctx context.Context, flightID int64) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE flight_id=$1`, flightID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4) RETURNING id`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID); err != nil {
		return mapError(err)
	}
	if err := assignCrew(ctx, tx, flight); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	if err := assignCrew(ctx, tx, flight); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func assignCrew(ctx context.Context, tx pgx.Tx, flight *domain.Flight) error {
	if len(flight.CrewIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id)
		SELECT $1, c FROM unnest($2::bigint[]) AS c ON CONFLICT DO NOTHING`, flight.ID, flight.CrewIDs); err != nil {
		return fmt.Errorf("assign crew: %w", mapError(err))
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
