package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/fitstats/internal/insights"
	"github.com/2beens/fitstats/internal/workouts"
)

// WorkoutsRepo provides workout, category and subcategory data (for dependency injection and testing).
type WorkoutsRepo interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
	ListCategories(ctx context.Context) ([]workouts.Category, error)
	ListSubcategories(ctx context.Context) ([]workouts.Subcategory, error)
}

// snapshotComputer produces an analytics snapshot from raw workout data
// (for dependency injection and testing).
type snapshotComputer interface {
	Compute(ctx context.Context, in insights.ComputeInput) insights.Snapshot
}

// contextService provides fitstats context data (schema, workouts, analytics snapshot).
// Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetSnapshot(ctx context.Context, config insights.Config) (insights.Snapshot, error)
	ListWorkouts(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

// ContextService holds dependencies and implements the fitstats context business logic.
type ContextService struct {
	schema   SchemaRepo
	workouts WorkoutsRepo
	computer snapshotComputer
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(schemaRepo SchemaRepo, workoutsRepo WorkoutsRepo, computer snapshotComputer) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		workouts: workoutsRepo,
		computer: computer,
	}
}

// GetSchema returns the DB schema (table names, columns, types) for fitstats-related
// tables: workout, category, subcategory.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetFitstatsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatFitstatsSchema(cols), nil
}

func formatFitstatsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Fitstats DB Schema\n\nNo fitstats tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Fitstats DB Schema\n\n")
	b.WriteString("Tables: workout, category, subcategory (schema: public).\n\n")

	for _, tableName := range tableOrder {
		tableCols := byTable[tableName]
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range tableCols {
			def := "—"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// GetSnapshot gathers all workout data and computes the analytics snapshot for the given config.
func (s *ContextService) GetSnapshot(ctx context.Context, config insights.Config) (insights.Snapshot, error) {
	workoutList, err := s.workouts.ListAll(ctx, workouts.WorkoutParams{})
	if err != nil {
		return insights.Snapshot{}, fmt.Errorf("list workouts: %w", err)
	}
	categories, err := s.workouts.ListCategories(ctx)
	if err != nil {
		return insights.Snapshot{}, fmt.Errorf("list categories: %w", err)
	}
	subcategories, err := s.workouts.ListSubcategories(ctx)
	if err != nil {
		return insights.Snapshot{}, fmt.Errorf("list subcategories: %w", err)
	}

	return s.computer.Compute(ctx, insights.ComputeInput{
		Workouts:      workoutList,
		Categories:    categories,
		Subcategories: subcategories,
		Config:        config,
	}), nil
}

// ListWorkouts returns workouts for the given params (time range, type filter).
func (s *ContextService) ListWorkouts(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error) {
	return s.workouts.ListAll(ctx, params)
}
