package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/search"
)

func goalPath(title string) string {
	return "/api/v1/goals/" + url.PathEscape(title)
}

func TestGoals_CRUDFlow(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{
		Title:    "Learn Go",
		Category: "programming",
		Priority: "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Goal](t, w)
	assert.True(t, created.Success)
	assert.Equal(t, "Learn Go", created.Data.Title)
	assert.Equal(t, domain.PriorityHigh, created.Data.Priority)
	assert.False(t, created.Data.Completed)

	w = ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_KEY", decode[any](t, w).Code)

	w = ts.do(t, http.MethodPut, goalPath("Learn Go"), alice, GoalRequest{
		Description: "Finish the tour",
		Priority:    "low",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Goal](t, w)
	assert.Equal(t, "Finish the tour", updated.Data.Description)
	assert.Equal(t, domain.PriorityLow, updated.Data.Priority)

	w = ts.do(t, http.MethodPost, goalPath("Learn Go")+"/complete", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[domain.Goal](t, w).Data.Completed)

	w = ts.do(t, http.MethodGet, "/api/v1/goals", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[GoalsResponse](t, w)
	require.Len(t, list.Data.Goals, 1)
	assert.True(t, list.Data.Goals[0].Completed)

	w = ts.do(t, http.MethodDelete, goalPath("Learn Go"), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[DeleteResponse](t, w).Data.Deleted)

	w = ts.do(t, http.MethodDelete, goalPath("Learn Go"), alice, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, w).Code)
}

func TestGoals_EmptyListIsArray(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodGet, "/api/v1/goals", ts.token(t, "alice"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"goals":[]`)
}

func TestGoals_RenameRejected(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPut, goalPath("Learn Go"), alice, GoalRequest{Title: "Learn Rust"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, w).Code)
}

func TestGoals_ValidationError(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPost, "/api/v1/goals", ts.token(t, "alice"), GoalRequest{Title: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[any](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGoals_PartitionedByIdentity(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")
	bob := ts.token(t, "bob")

	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same title in another partition is not a duplicate.
	w = ts.do(t, http.MethodPost, "/api/v1/goals", bob, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodDelete, goalPath("Learn Go"), bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/goals", alice, nil)
	assert.Len(t, decode[GoalsResponse](t, w).Data.Goals, 1)
}

func TestGoals_TitlesWithEscapesRoundTrip(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	for _, title := range []string{"Read a/b", "50%20off", "100%", "Café notes"} {
		t.Run(title, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: title})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			w = ts.do(t, http.MethodPut, goalPath(title), alice, GoalRequest{Description: "edited"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			updated := decode[domain.Goal](t, w).Data
			assert.Equal(t, title, updated.Title)
			assert.Equal(t, "edited", updated.Description)

			w = ts.do(t, http.MethodPost, goalPath(title)+"/complete", alice, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.True(t, decode[domain.Goal](t, w).Data.Completed)

			w = ts.do(t, http.MethodDelete, goalPath(title), alice, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}

	// "50%20off" must not collide with a goal literally titled "50 off".
	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "50 off"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodDelete, goalPath("50%20off"), alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResources_TitleWithEscapeRoundTrips(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodPost, "/api/v1/resources", alice, ResourceRequest{
		Title: "50%20off",
		URL:   "https://example.com/sale",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodDelete, "/api/v1/resources/"+url.PathEscape("50%20off"), alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRoles_GuestCannotWrite(t *testing.T) {
	ts := setupTestServer(t, Options{})
	require.NoError(t, ts.roles.Bootstrap(context.Background(), []string{"root"}))

	root := ts.token(t, "root")
	bob := ts.token(t, "bob")

	w := ts.do(t, http.MethodPut, "/api/v1/roles/bob", root, AssignRoleRequest{Role: "guest"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.RoleGuest, decode[domain.RoleAssignment](t, w).Data.Role)

	w = ts.do(t, http.MethodGet, "/api/v1/roles/me", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.RoleGuest, decode[RoleResponse](t, w).Data.Role)

	w = ts.do(t, http.MethodPost, "/api/v1/goals", bob, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PERMISSION_DENIED", decode[any](t, w).Code)

	w = ts.do(t, http.MethodGet, "/api/v1/goals", bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoles_AdminOnly(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodGet, "/api/v1/roles/me/admin", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[IsAdminResponse](t, w).Data.IsAdmin)

	w = ts.do(t, http.MethodPut, "/api/v1/roles/bob", alice, AssignRoleRequest{Role: "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/roles", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoles_ListAssignments(t *testing.T) {
	ts := setupTestServer(t, Options{})
	require.NoError(t, ts.roles.Bootstrap(context.Background(), []string{"root"}))
	root := ts.token(t, "root")

	w := ts.do(t, http.MethodPut, "/api/v1/roles/bob", root, AssignRoleRequest{Role: "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/roles", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assignments := decode[AssignmentsResponse](t, w).Data.Assignments
	require.Len(t, assignments, 1)
	assert.Equal(t, "root", assignments[0].Identity)
}

func TestSessions_Flow(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	for _, date := range []string{"2024-06-01", "2024-06-02"} {
		w := ts.do(t, http.MethodPost, "/api/v1/sessions", alice, StudySessionRequest{
			Subject:         "Math",
			Date:            date,
			DurationMinutes: 30,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := ts.do(t, http.MethodPost, "/api/v1/sessions", alice, StudySessionRequest{
		Subject:         "History",
		Date:            "2024-06-02",
		DurationMinutes: 45,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	history := decode[domain.StudySession](t, w).Data

	w = ts.do(t, http.MethodGet, "/api/v1/sessions", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[StudySessionsResponse](t, w).Data.Sessions, 3)

	w = ts.do(t, http.MethodDelete, "/api/v1/sessions?subject=Math", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[DeleteResponse](t, w).Data.Count)

	w = ts.do(t, http.MethodDelete, "/api/v1/sessions?subject=Math", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/sessions/"+history.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/sessions", alice, nil)
	assert.Empty(t, decode[StudySessionsResponse](t, w).Data.Sessions)
}

func TestSessions_InvalidDuration(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPost, "/api/v1/sessions", ts.token(t, "alice"), StudySessionRequest{
		Subject:         "Math",
		Date:            "2024-06-01",
		DurationMinutes: 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResources_Flow(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodPost, "/api/v1/resources", alice, ResourceRequest{
		Title:    "Go Tour",
		URL:      "https://go.dev/tour",
		Category: "programming",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/v1/resources", alice, ResourceRequest{
		Title: "Bad Link",
		URL:   "ftp://example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	notes := "chapters 1-3"
	w = ts.do(t, http.MethodPut, "/api/v1/resources/"+url.PathEscape("Go Tour"), alice, ResourceRequest{
		URL:   "https://go.dev/tour/welcome",
		Notes: &notes,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Resource](t, w).Data
	assert.Equal(t, "https://go.dev/tour/welcome", updated.URL)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	w = ts.do(t, http.MethodGet, "/api/v1/resources", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ResourcesResponse](t, w).Data.Resources, 1)

	w = ts.do(t, http.MethodDelete, "/api/v1/resources/"+url.PathEscape("Go Tour"), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProfile_Flow(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")
	bob := ts.token(t, "bob")

	w := ts.do(t, http.MethodGet, "/api/v1/profile", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[ProfileResponse](t, w).Data.Profile)

	w = ts.do(t, http.MethodPut, "/api/v1/profile", alice, ProfileRequest{Name: "Alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/profiles/alice", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[ProfileResponse](t, w).Data.Profile
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.Name)

	w = ts.do(t, http.MethodPut, "/api/v1/profile", alice, ProfileRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettings_Flow(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodGet, "/api/v1/settings", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.FontSizeNormal, decode[domain.UserSettings](t, w).Data.FontSize)

	w = ts.do(t, http.MethodPut, "/api/v1/settings", alice, SettingsRequest{FontSize: "xl", HighContrast: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/settings", alice, nil)
	settings := decode[domain.UserSettings](t, w).Data
	assert.Equal(t, domain.FontSizeXL, settings.FontSize)
	assert.True(t, settings.HighContrast)

	w = ts.do(t, http.MethodPut, "/api/v1/settings", alice, SettingsRequest{FontSize: "huge"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")

	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "Learn Go"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/sessions", alice, StudySessionRequest{
		Subject: "Go", Date: "2024-06-01", DurationMinutes: 25,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/stats", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.ProgressStats](t, w).Data
	assert.Equal(t, 25, stats.TotalStudyMinutes)
	assert.Equal(t, 1, stats.TotalGoals)
	assert.Equal(t, 0, stats.CompletedGoals)
	assert.Equal(t, 1, stats.DistinctStudyDays)
	assert.Equal(t, 1, stats.LongestStreak)
}

func TestSearch(t *testing.T) {
	ts := setupTestServer(t, Options{})
	alice := ts.token(t, "alice")
	bob := ts.token(t, "bob")

	w := ts.do(t, http.MethodPost, "/api/v1/goals", alice, GoalRequest{Title: "Learn Go concurrency", Category: "programming"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/resources", alice, ResourceRequest{
		Title: "Concurrency patterns", URL: "https://go.dev/blog/pipelines", Category: "programming",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/goals", bob, GoalRequest{Title: "Concurrency in Rust"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/search?q=concurrency", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[search.SearchResult](t, w).Data
	assert.Equal(t, uint64(2), result.Total)

	w = ts.do(t, http.MethodGet, "/api/v1/search?q=concurrency&type=resource", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result = decode[search.SearchResult](t, w).Data
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Concurrency patterns", result.Hits[0].Title)

	w = ts.do(t, http.MethodGet, "/api/v1/search?q=concurrency&type=book", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
