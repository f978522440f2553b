package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Route, error)
	ListByAirport(ctx context.Context, airportID int64) (departures, arrivals []domain.Route, err error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const selectRoutes = `SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
	FROM routes r
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id`

func (r *PGRouteRepository) List(ctx context.Context, page domain.Page) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, selectRoutes+` ORDER BY r.id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collectRoutes(rows)
}

func (r *PGRouteRepository) ListByAirport(ctx context.Context, airportID int64) ([]domain.Route, []domain.Route, error) {
	rows, err := r.db.Query(ctx, selectRoutes+` WHERE r.source_id=$1 OR r.destination_id=$1 ORDER BY r.id`, airportID)
	if err != nil {
		return nil, nil, err
	}
	all, err := collectRoutes(rows)
	if err != nil {
		return nil, nil, err
	}

	departures := make([]domain.Route, 0)
	arrivals := make([]domain.Route, 0)
	for _, route := range all {
		if route.SourceID == airportID {
			departures = append(departures, route)
		}
		if route.DestinationID == airportID {
			arrivals = append(arrivals, route)
		}
	}
	return departures, arrivals, nil
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, selectRoutes+` WHERE r.id=$1`, id)
	var route domain.Route
	if err := row.Scan(&route.ID, &route.SourceID, &route.DestinationID, &route.Distance, &route.SourceName, &route.DestinationName); err != nil {
		return nil, mapError(err)
	}
	return &route, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return mapError(err)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	res, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectRoutes(rows pgx.Rows) ([]domain.Route, error) {
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(&route.ID, &route.SourceID, &route.DestinationID, &route.Distance, &route.SourceName, &route.DestinationName); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
