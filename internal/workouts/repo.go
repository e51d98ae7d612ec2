package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutParams struct {
	Type WorkoutType
	From *time.Time
	To   *time.Time
}

type ListParams struct {
	WorkoutParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entriesJson, err := json.Marshal(workout.Entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout
				(type, started_at, duration_seconds, distance_km, category_ids, subcategory_ids, entries)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		workout.Type, workout.StartedAt, workout.DurationSeconds, workout.DistanceKm,
		workout.CategoryIDs, workout.SubcategoryIDs, entriesJson,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	return &workout, nil
}

func (r *Repo) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workout.ID))

	entriesJson, err := json.Marshal(workout.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET type = $1, started_at = $2, duration_seconds = $3, distance_km = $4, category_ids = $5, subcategory_ids = $6, entries = $7 WHERE id = $8;`,
		workout.Type, workout.StartedAt, workout.DurationSeconds, workout.DistanceKm,
		workout.CategoryIDs, workout.SubcategoryIDs, entriesJson, workout.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, started_at, duration_seconds, distance_km, category_ids, subcategory_ids, entries
			FROM workout
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &workouts[0], nil
}

// ListAll returns all workouts matching the given type and time range.
func (r *Repo) ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", params.Type.String()))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, started_at, duration_seconds, distance_km, category_ids, subcategory_ids, entries
			FROM workout
				WHERE ($1::text = '' OR type = $1)
				AND ($2::timestamp IS NULL OR started_at >= $2)
				AND ($3::timestamp IS NULL OR started_at <= $3)
			ORDER BY started_at DESC;`,
		params.Type, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

// List is like ListAll, but it returns the specific PAGE of matched workouts,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("type", params.Type.String()))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.WorkoutsCount(ctx, params)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, started_at, duration_seconds, distance_km, category_ids, subcategory_ids, entries
			FROM workout
				WHERE ($1::text = '' OR type = $1)
				AND ($2::timestamp IS NULL OR started_at >= $2)
				AND ($3::timestamp IS NULL OR started_at <= $3)
			ORDER BY started_at DESC
			LIMIT $4
			OFFSET $5;`,
		params.Type, params.From, params.To,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}
	return workouts, countAll, nil
}

func (r *Repo) WorkoutsCount(ctx context.Context, params ListParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM workout
			WHERE ($1::text = '' OR type = $1)
			AND ($2::timestamp IS NULL OR started_at >= $2)
			AND ($3::timestamp IS NULL OR started_at <= $3);
	`,
		params.Type, params.From, params.To,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get workouts count")
}

func (r *Repo) AddCategory(ctx context.Context, category Category) (_ *Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addcategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO category (name, type) VALUES ($1, $2) RETURNING id;`,
		category.Name, category.Type,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("category.id", id))

	category.ID = id
	return &category, nil
}

func (r *Repo) AddSubcategory(ctx context.Context, subcategory Subcategory) (_ *Subcategory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addsubcategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO subcategory (name, category_id) VALUES ($1, $2) RETURNING id;`,
		subcategory.Name, subcategory.CategoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("subcategory.id", id))

	subcategory.ID = id
	return &subcategory, nil
}

func (r *Repo) ListCategories(ctx context.Context) (_ []Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listcategories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, type FROM category ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if categories == nil {
		categories = make([]Category, 0)
	}

	span.SetAttributes(attribute.Int("categories", len(categories)))

	return categories, nil
}

func (r *Repo) ListSubcategories(ctx context.Context) (_ []Subcategory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listsubcategories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, category_id FROM subcategory ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var subcategories []Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, s)
	}

	if subcategories == nil {
		subcategories = make([]Subcategory, 0)
	}

	span.SetAttributes(attribute.Int("subcategories", len(subcategories)))

	return subcategories, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var id int
		var workoutType string
		var startedAt time.Time
		var durationSeconds int
		var distanceKm *float64
		var categoryIDs []int
		var subcategoryIDs []int
		var entriesBytes []byte
		if err := rows.Scan(
			&id, &workoutType, &startedAt, &durationSeconds,
			&distanceKm, &categoryIDs, &subcategoryIDs, &entriesBytes,
		); err != nil {
			return nil, err
		}

		w := Workout{
			ID:              id,
			Type:            WorkoutType(workoutType),
			StartedAt:       startedAt,
			DurationSeconds: durationSeconds,
			DistanceKm:      distanceKm,
			CategoryIDs:     categoryIDs,
			SubcategoryIDs:  subcategoryIDs,
		}

		if len(entriesBytes) > 0 {
			if err := json.Unmarshal(entriesBytes, &w.Entries); err != nil {
				return nil, fmt.Errorf("unmarshal entries for workout %d: %w", id, err)
			}
		}

		if w.CategoryIDs == nil {
			w.CategoryIDs = make([]int, 0)
		}
		if w.SubcategoryIDs == nil {
			w.SubcategoryIDs = make([]int, 0)
		}
		if w.Entries == nil {
			w.Entries = make([]ExerciseEntry, 0)
		}

		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}
