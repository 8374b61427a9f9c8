package activitylocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-activity-locations/app/observability/metrics"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	ListByActivity(ctx context.Context, activityID string) ([]*models.ActivityLocation, error)
	// SaveBatch stores every change in one transaction and returns the ids
	// assigned to each stored location.
	SaveBatch(ctx context.Context, changes locationedit.Changes) ([]types.SaveResult, error)
}

// DB is the part of pgxpool.Pool the repository uses.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool DB
}

func NewRepository(pgpool DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

const listByActivityQuery = `
        SELECT al.id::text, al.gazetteer_id, al.region_name, al.municipal_name, al.place_name,
               al.mcode, al.pcode, al.lat, al.lng,
               pl.id::text, pl.lat, pl.lng
        FROM activity_locations al
        LEFT JOIN precise_locations pl ON pl.activity_location_id = al.id
        WHERE al.activity_id = $1
        ORDER BY al.created_at, al.id
    `

func (r *RepositoryImpl) ListByActivity(ctx context.Context, activityID string) ([]*models.ActivityLocation, error) {
	ctx, span := otel.Tracer("ActivityLocationRepository").Start(ctx, "ListByActivity", trace.WithAttributes(
		attribute.String("activity.id", activityID),
	))
	defer span.End()
	defer observe(ctx, "list_by_activity", time.Now())

	rows, err := r.pgpool.Query(ctx, listByActivityQuery, activityID)
	if err != nil {
		queryFailed(ctx, span, "list_by_activity", err)
		return nil, fmt.Errorf("failed to query activity locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.ActivityLocation
	for rows.Next() {
		var id string
		var p models.Place
		var preciseID *string
		var preciseLat, preciseLng *float64
		if err := rows.Scan(&id, &p.GazetteerID, &p.RegionName, &p.MunicipalName, &p.PlaceName,
			&p.AdminCodes.Municipal, &p.AdminCodes.Place, &p.Coordinate.Lat, &p.Coordinate.Lng,
			&preciseID, &preciseLat, &preciseLng); err != nil {
			queryFailed(ctx, span, "list_by_activity", err)
			return nil, fmt.Errorf("failed to scan activity location: %w", err)
		}

		var precise *models.LocationSnapshot
		locationID := ""
		if preciseID != nil && preciseLat != nil && preciseLng != nil {
			s := models.NewPreciseSnapshot(models.Coordinate{Lat: *preciseLat, Lng: *preciseLng})
			precise = &s
			locationID = *preciseID
		}
		locations = append(locations, models.RestoreActivityLocation(
			models.ActivityLocationID(id), models.NewPlaceSnapshot(p), precise, locationID))
	}
	if err := rows.Err(); err != nil {
		queryFailed(ctx, span, "list_by_activity", err)
		return nil, fmt.Errorf("error iterating activity locations: %w", err)
	}

	span.SetAttributes(attribute.Int("locations.count", len(locations)))
	span.SetStatus(codes.Ok, "Activity locations loaded")
	return locations, nil
}

func (r *RepositoryImpl) SaveBatch(ctx context.Context, changes locationedit.Changes) ([]types.SaveResult, error) {
	ctx, span := otel.Tracer("ActivityLocationRepository").Start(ctx, "SaveBatch", trace.WithAttributes(
		attribute.String("activity.id", changes.ActivityID),
		attribute.Int("upserts.count", len(changes.Upserts)),
		attribute.Int("removed.count", len(changes.Removed)),
	))
	defer span.End()
	defer observe(ctx, "save_batch", time.Now())

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		queryFailed(ctx, span, "save_batch", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	results := make([]types.SaveResult, 0, len(changes.Upserts))
	for _, al := range changes.Locations() {
		result, err := r.saveLocation(ctx, tx, changes.ActivityID, al)
		if err != nil {
			queryFailed(ctx, span, "save_batch", err)
			return nil, err
		}
		results = append(results, result)
	}

	if len(changes.Removed) > 0 {
		ids := make([]string, len(changes.Removed))
		for i, id := range changes.Removed {
			ids[i] = id.String()
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM activity_locations WHERE activity_id = $1 AND id::text = ANY($2)`,
			changes.ActivityID, ids); err != nil {
			queryFailed(ctx, span, "save_batch", err)
			return nil, fmt.Errorf("failed to delete activity locations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		queryFailed(ctx, span, "save_batch", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "Activity locations saved",
		slog.String("activity_id", changes.ActivityID),
		slog.Int("saved", len(results)),
		slog.Int("removed", len(changes.Removed)))
	span.SetStatus(codes.Ok, "Activity locations saved")
	return results, nil
}

func (r *RepositoryImpl) saveLocation(ctx context.Context, tx pgx.Tx, activityID string, al *models.ActivityLocation) (types.SaveResult, error) {
	def := al.DefaultLocation()
	admin := def.AdminCodes()
	coord := def.Coordinate()
	result := types.SaveResult{MatchWith: types.SaveMatch{TempID: al.ID().String()}}

	if al.ID().IsTemporary() {
		query := `
        INSERT INTO activity_locations (
            activity_id, gazetteer_id, region_name, municipal_name, place_name, mcode, pcode, lat, lng
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        ) RETURNING id::text
    `
		if err := tx.QueryRow(ctx, query,
			activityID, def.GazetteerID(), def.RegionName(), def.MunicipalName(), def.PlaceName(),
			admin.Municipal, admin.Place, coord.Lat, coord.Lng,
		).Scan(&result.New.PermanentID); err != nil {
			return result, fmt.Errorf("failed to insert activity location %s: %w", al.ID(), err)
		}
	} else {
		query := `
        UPDATE activity_locations
        SET gazetteer_id = $3, region_name = $4, municipal_name = $5, place_name = $6,
            mcode = $7, pcode = $8, lat = $9, lng = $10, updated_at = NOW()
        WHERE id::text = $1 AND activity_id = $2
    `
		tag, err := tx.Exec(ctx, query,
			al.ID().String(), activityID, def.GazetteerID(), def.RegionName(), def.MunicipalName(), def.PlaceName(),
			admin.Municipal, admin.Place, coord.Lat, coord.Lng)
		if err != nil {
			return result, fmt.Errorf("failed to update activity location %s: %w", al.ID(), err)
		}
		if tag.RowsAffected() == 0 {
			return result, fmt.Errorf("activity location %s: %w", al.ID(), pgx.ErrNoRows)
		}
		result.New.PermanentID = al.ID().String()
	}

	locationID, err := r.savePrecise(ctx, tx, result.New.PermanentID, al)
	if err != nil {
		return result, err
	}
	result.New.LocationID = locationID
	return result, nil
}

// savePrecise upserts or deletes the precise location of the stored row id.
func (r *RepositoryImpl) savePrecise(ctx context.Context, tx pgx.Tx, id string, al *models.ActivityLocation) (string, error) {
	precise, ok := al.PreciseLocation()
	if !ok {
		tag, err := tx.Exec(ctx, `DELETE FROM precise_locations WHERE activity_location_id::text = $1`, id)
		if err != nil {
			return "", fmt.Errorf("failed to delete precise location of %s: %w", id, err)
		}
		if tag.RowsAffected() > 0 {
			r.logger.DebugContext(ctx, "Precise location deleted", slog.String("activity_location_id", id))
		}
		return "", nil
	}

	query := `
        INSERT INTO precise_locations (activity_location_id, lat, lng)
        VALUES ($1::uuid, $2, $3)
        ON CONFLICT (activity_location_id) DO UPDATE
        SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = NOW()
        RETURNING id::text
    `
	c := precise.Coordinate()
	var locationID string
	if err := tx.QueryRow(ctx, query, id, c.Lat, c.Lng).Scan(&locationID); err != nil {
		return "", fmt.Errorf("failed to save precise location of %s: %w", id, err)
	}
	return locationID, nil
}

func observe(ctx context.Context, query string, start time.Time) {
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("query", query)))
}

func queryFailed(ctx context.Context, span trace.Span, query string, err error) {
	metrics.Get().DbQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("query", query)))
	span.RecordError(err)
	span.SetStatus(codes.Error, "query failed")
}
