package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/fitstats/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) listCategoriesRequest(ctx context.Context, sessionToken string) []workouts.Category {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/category", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITSTATS-TOKEN", sessionToken)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var categories []workouts.Category
	require.NoError(s.T(), json.Unmarshal(respBytes, &categories))
	return categories
}

func (s *IntegrationTestSuite) listSubcategoriesRequest(ctx context.Context, sessionToken string) []workouts.Subcategory {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/subcategory", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITSTATS-TOKEN", sessionToken)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var subcategories []workouts.Subcategory
	require.NoError(s.T(), json.Unmarshal(respBytes, &subcategories))
	return subcategories
}

// addCategoryRequest sends the add category request and returns the raw
// response so the callers can also check the error outcomes.
func (s *IntegrationTestSuite) addCategoryRequest(
	ctx context.Context,
	sessionToken string,
	category workouts.Category,
) (int, []byte) {
	categoryJson, err := json.Marshal(category)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/workouts/category", serverEndpoint),
		bytes.NewReader(categoryJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITSTATS-TOKEN", sessionToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) addSubcategoryRequest(
	ctx context.Context,
	sessionToken string,
	subcategory workouts.Subcategory,
) (int, []byte) {
	subcategoryJson, err := json.Marshal(subcategory)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/workouts/subcategory", serverEndpoint),
		bytes.NewReader(subcategoryJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITSTATS-TOKEN", sessionToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestWorkoutCategories() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionToken := s.doLogin(ctx)

	s.T().Run("seeded categories", func(t *testing.T) {
		categories := s.listCategoriesRequest(ctx, sessionToken)
		require.Len(t, categories, 2)
		assert.Equal(t, workouts.Category{ID: 1, Name: "Upper Body", Type: workouts.WorkoutTypeStrength}, categories[0])
		assert.Equal(t, workouts.Category{ID: 2, Name: "Lower Body", Type: workouts.WorkoutTypeStrength}, categories[1])

		subcategories := s.listSubcategoriesRequest(ctx, sessionToken)
		require.Len(t, subcategories, 3)
		assert.Equal(t, workouts.Subcategory{ID: 1, Name: "Push", CategoryID: 1}, subcategories[0])
		assert.Equal(t, workouts.Subcategory{ID: 2, Name: "Pull", CategoryID: 1}, subcategories[1])
		assert.Equal(t, workouts.Subcategory{ID: 3, Name: "Legs", CategoryID: 2}, subcategories[2])
	})

	s.T().Run("add category", func(t *testing.T) {
		statusCode, respBytes := s.addCategoryRequest(ctx, sessionToken, workouts.Category{
			Name: "Mobility",
			Type: workouts.WorkoutTypeYoga,
		})
		require.Equal(t, http.StatusCreated, statusCode)

		var added workouts.Category
		require.NoError(t, json.Unmarshal(respBytes, &added))
		assert.Equal(t, 3, added.ID)
		assert.Equal(t, "Mobility", added.Name)
		assert.Equal(t, workouts.WorkoutTypeYoga, added.Type)

		categories := s.listCategoriesRequest(ctx, sessionToken)
		require.Len(t, categories, 3)
		assert.Equal(t, "Mobility", categories[2].Name)

		// the category names are unique
		statusCode, respBytes = s.addCategoryRequest(ctx, sessionToken, workouts.Category{
			Name: "Mobility",
			Type: workouts.WorkoutTypeYoga,
		})
		assert.Equal(t, http.StatusConflict, statusCode)
		assert.Contains(t, string(respBytes), "category already exists")
	})

	s.T().Run("add subcategory", func(t *testing.T) {
		statusCode, respBytes := s.addSubcategoryRequest(ctx, sessionToken, workouts.Subcategory{
			Name:       "Hinge",
			CategoryID: 2,
		})
		require.Equal(t, http.StatusCreated, statusCode)

		var added workouts.Subcategory
		require.NoError(t, json.Unmarshal(respBytes, &added))
		assert.Equal(t, 4, added.ID)
		assert.Equal(t, "Hinge", added.Name)
		assert.Equal(t, 2, added.CategoryID)

		// a subcategory must reference an existing category
		statusCode, respBytes = s.addSubcategoryRequest(ctx, sessionToken, workouts.Subcategory{
			Name:       "Ghost",
			CategoryID: 999,
		})
		assert.Equal(t, http.StatusBadRequest, statusCode)
		assert.Contains(t, string(respBytes), "category not found")
	})

	s.T().Run("unauthorized", func(t *testing.T) {
		categoryJson, err := json.Marshal(workouts.Category{
			Name: "Sneaky",
			Type: workouts.WorkoutTypeOther,
		})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/workouts/category", serverEndpoint),
			bytes.NewReader(categoryJson),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}
