package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	List(ctx context.Context, params ListParams) (_ []Workout, total int, err error)
	ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id int) error
	WorkoutsCount(ctx context.Context, params ListParams) (int, error)
	AddCategory(ctx context.Context, category Category) (*Category, error)
	AddSubcategory(ctx context.Context, subcategory Subcategory) (*Subcategory, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListSubcategories(ctx context.Context) ([]Subcategory, error)
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateWorkoutResponse struct {
	UpdatedID int `json:"updatedId"`
}

type AddWorkoutResponse struct {
	Workout
	CountToday int `json:"countToday"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo    workoutsRepo
	metrics *metrics.Manager
}

func NewHandler(repo workoutsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if !workout.Type.IsValid() {
		http.Error(w, "error, invalid or empty workout type", http.StatusBadRequest)
		return
	}
	for _, entry := range workout.Entries {
		if strings.TrimSpace(entry.Name) == "" {
			http.Error(w, "error, exercise entry name empty", http.StatusBadRequest)
			return
		}
	}

	if workout.StartedAt.IsZero() {
		workout.StartedAt = time.Now()
	}

	addedWorkout, err := handler.repo.Add(ctx, workout)
	if err != nil {
		log.Errorf("failed to add new workout [%s]: %s", workout.Type, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkouts.Inc()

	todayMidnight := time.Now().Truncate(24 * time.Hour)
	tomorrowMidnight := todayMidnight.Add(24 * time.Hour)
	workoutsToday, err := handler.repo.ListAll(ctx, WorkoutParams{
		Type: addedWorkout.Type,
		From: &todayMidnight,
		To:   &tomorrowMidnight,
	})
	if err != nil {
		// just log the error, no need to return error to the client
		log.Errorf("failed to get workouts today [%s]: %s", addedWorkout.Type, err)
	}

	addWorkoutResponse := AddWorkoutResponse{
		Workout:    *addedWorkout,
		CountToday: len(workoutsToday),
	}

	addedWorkoutJson, err := json.Marshal(addWorkoutResponse)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", addedWorkoutJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedWorkoutJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "workout not found", http.StatusBadRequest)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrWorkoutNotFound) {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrWorkoutNotFound) {
		log.Debugf("workout %d not found", id)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	log.Debugf("deleting workout %+v", workout)

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle get workouts page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle get workouts page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page size (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	workoutType := WorkoutType(r.URL.Query().Get("type"))
	if workoutType != "" && !workoutType.IsValid() {
		http.Error(w, "error, invalid workout type", http.StatusBadRequest)
		return
	}

	listParams := ListParams{
		WorkoutParams: WorkoutParams{
			Type: workoutType,
		},
		Page: page,
		Size: size,
	}

	workouts, total, err := handler.repo.List(ctx, listParams)
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	workoutsPageResponse := ListResponse{
		Workouts: workouts,
		Total:    total,
	}

	workoutsPageResponseJson, err := json.Marshal(workoutsPageResponse)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutsPageResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	if !workout.Type.IsValid() {
		http.Error(w, "error, invalid or empty workout type", http.StatusBadRequest)
		return
	}
	for _, entry := range workout.Entries {
		if strings.TrimSpace(entry.Name) == "" {
			http.Error(w, "error, exercise entry name empty", http.StatusBadRequest)
			return
		}
	}

	currentWorkout, err := handler.repo.Get(ctx, workout.ID)
	if err != nil && !errors.Is(err, ErrWorkoutNotFound) {
		log.Errorf("failed to get workout %d: %s", workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrWorkoutNotFound) {
		log.Debugf("workout %d not found", workout.ID)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	log.Debugf("update workout %+v -> %+v", currentWorkout, workout)

	if err := handler.repo.Update(ctx, &workout); err != nil {
		log.Errorf("failed to update workout [%d]: %s", workout.ID, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateWorkoutResponse{
		UpdatedID: workout.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout updated: [%s]: %d", workout.Type, workout.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleAddCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.newcategory")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var category Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Tracef("new category, unmarshal json params: %s", err)
		http.Error(w, "add category failed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(category.Name) == "" {
		http.Error(w, "error, category name empty", http.StatusBadRequest)
		return
	}
	if !category.Type.IsValid() {
		http.Error(w, "error, invalid or empty workout type", http.StatusBadRequest)
		return
	}

	addedCategory, err := handler.repo.AddCategory(ctx, category)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "category already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new category [%s]: %s", category.Name, err)
		http.Error(w, "error, failed to add new category", http.StatusInternalServerError)
		return
	}

	addedCategoryJson, err := json.Marshal(addedCategory)
	if err != nil {
		log.Errorf("failed to marshal new category: %s", err)
		http.Error(w, "error, failed to add new category", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedCategoryJson, http.StatusCreated)
}

func (handler *Handler) HandleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.newsubcategory")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var subcategory Subcategory
	if err := json.NewDecoder(r.Body).Decode(&subcategory); err != nil {
		log.Tracef("new subcategory, unmarshal json params: %s", err)
		http.Error(w, "add subcategory failed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(subcategory.Name) == "" {
		http.Error(w, "error, subcategory name empty", http.StatusBadRequest)
		return
	}

	addedSubcategory, err := handler.repo.AddSubcategory(ctx, subcategory)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add new subcategory [%s]: %s", subcategory.Name, err)
		http.Error(w, "error, failed to add new subcategory", http.StatusInternalServerError)
		return
	}

	addedSubcategoryJson, err := json.Marshal(addedSubcategory)
	if err != nil {
		log.Errorf("failed to marshal new subcategory: %s", err)
		http.Error(w, "error, failed to add new subcategory", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSubcategoryJson, http.StatusCreated)
}

func (handler *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listcategories")
	defer span.End()

	categories, err := handler.repo.ListCategories(ctx)
	if err != nil {
		log.Errorf("list categories error: %s", err)
		http.Error(w, "failed to get categories", http.StatusInternalServerError)
		return
	}

	categoriesJson, err := json.Marshal(categories)
	if err != nil {
		log.Errorf("marshal categories error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, categoriesJson, http.StatusOK)
}

func (handler *Handler) HandleListSubcategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listsubcategories")
	defer span.End()

	subcategories, err := handler.repo.ListSubcategories(ctx)
	if err != nil {
		log.Errorf("list subcategories error: %s", err)
		http.Error(w, "failed to get subcategories", http.StatusInternalServerError)
		return
	}

	subcategoriesJson, err := json.Marshal(subcategories)
	if err != nil {
		log.Errorf("marshal subcategories error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, subcategoriesJson, http.StatusOK)
}

