package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/handlers"
	"ENW_BACK-END/internal/markdown"
	"ENW_BACK-END/internal/middleware"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/store/memory"
	"ENW_BACK-END/internal/utils"
)

const adminKey = "admin-key"

type server struct {
	t *testing.T
	h http.Handler
}

func newServer(t *testing.T, auth config.AuthConfig, maxRequests int) *server {
	t.Helper()
	s := memory.New()
	log := zerolog.Nop()
	n := notify.Noop{}

	assignments := services.NewAssignmentService(s, log, true)
	mux := SetupRoutes(Handlers{
		Health:     handlers.NewHealthHandler(s, config.EnvTest),
		Seniors:    handlers.NewSeniorHandler(services.NewIntakeService(s, n, log, true), services.NewSupportRequestService(s, log), assignments),
		Volunteers: handlers.NewVolunteerHandler(services.NewVolunteerService(s, n, log)),
		Partners:   handlers.NewPartnerHandler(services.NewPartnerService(s, n, log)),
		Assign:     handlers.NewAssignmentHandler(assignments),
		Blog:       handlers.NewBlogHandler(services.NewBlogService(s, markdown.NewRenderer(), log)),
	}, Options{
		Adapter: handlers.Adapter{Errors: utils.ErrorWriter{Production: true}},
		Admin:   middleware.RequireAdmin(&auth),
		API:     middleware.RateLimit(middleware.NewMemoryLimiter(time.Minute), maxRequests, false),
	})
	return &server{t: t, h: mux}
}

type response struct {
	Code int
	Body map[string]any
}

func (s *server) do(method, path string, body any, headers ...string) response {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	out := response{Code: rec.Code, Body: map[string]any{}}
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out.Body), rec.Body.String())
	}
	return out
}

func data(r response) map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func intakePayload(email string) map[string]any {
	return map[string]any{
		"firstName":        "Marija",
		"lastName":         "Petraitė",
		"email":            email,
		"phone":            "+37060000000",
		"age":              78,
		"address":          "Pilies g. 12, Vilnius",
		"emergencyContact": "Jonas Petraitis",
		"emergencyPhone":   "+37060000001",
		"supportNeeds":     "Grocery shopping assistance",
		"consent":          true,
	}
}

func volunteerPayload(email string) map[string]any {
	return map[string]any{
		"firstName":        "Ona",
		"lastName":         "Jonaitė",
		"email":            email,
		"phone":            "+37060000002",
		"age":              34,
		"address":          "Konstitucijos pr. 7, Vilnius",
		"skills":           []string{"SHOPPING"},
		"availability":     []string{"Weekday mornings"},
		"motivation":       "I would like to help seniors in my neighbourhood",
		"emergencyContact": "Petras",
		"emergencyPhone":   "+37060000003",
		"consent":          true,
	}
}

func TestHealthAndIndex(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 1000)

	r := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "healthy", r.Body["status"])
	assert.Equal(t, config.EnvTest, r.Body["environment"])

	assert.Equal(t, "alive", s.do(http.MethodGet, "/livez", nil).Body["status"])
	assert.Equal(t, "ready", s.do(http.MethodGet, "/readyz", nil).Body["status"])

	r = s.do(http.MethodGet, "/api", nil)
	assert.Equal(t, "Welcome to ENW API", r.Body["message"])
	assert.Equal(t, "1.0.0", r.Body["version"])

	r = s.do(http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, r.Code)
	assert.Equal(t, false, r.Body["success"])
	assert.Equal(t, "Resource not found", r.Body["message"])
	assert.Equal(t, "/api/nothing-here", r.Body["path"])

	assert.Equal(t, "pong", s.do(http.MethodGet, "/api/volunteers/ping", nil).Body["message"])
	r = s.do(http.MethodGet, "/api/partners/ping", nil)
	assert.Equal(t, true, r.Body["ok"])
	assert.Equal(t, "partners", r.Body["who"])
}

func TestSupportRequestFlow(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 1000)

	r := s.do(http.MethodPost, "/api/seniors/support-requests", intakePayload("marija@example.com"))
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, true, r.Body["success"])
	assert.Equal(t, "Support request submitted successfully", r.Body["message"])
	created := data(r)
	assert.Equal(t, "PENDING", created["status"])
	requestID := created["requestId"].(string)
	require.NotEmpty(t, created["seniorId"])

	t.Run("repeat intake is a duplicate", func(t *testing.T) {
		r := s.do(http.MethodPost, "/api/seniors/support-request", intakePayload("MARIJA@example.com"))
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.Equal(t, "DUPLICATE_KEY", r.Body["code"])
		assert.Equal(t, "email", r.Body["field"])
	})

	t.Run("list embeds the senior", func(t *testing.T) {
		r := s.do(http.MethodGet, "/api/seniors/support-requests?limit=abc", nil)
		require.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, float64(1), r.Body["total"])
		assert.Equal(t, float64(10), r.Body["limit"])
		rows := r.Body["data"].([]any)
		require.Len(t, rows, 1)
		senior := rows[0].(map[string]any)["seniorId"].(map[string]any)
		assert.Equal(t, "Marija", senior["firstName"])
		assert.Nil(t, senior["address"])
	})

	t.Run("detail carries the address", func(t *testing.T) {
		r := s.do(http.MethodGet, "/api/seniors/support-requests/"+requestID, nil)
		require.Equal(t, http.StatusOK, r.Code)
		senior := data(r)["seniorId"].(map[string]any)
		assert.Equal(t, "Pilies g. 12, Vilnius", senior["address"])

		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/seniors/support-requests/not-an-id", nil).Code)
		r = s.do(http.MethodGet, "/api/seniors/support-requests/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.Equal(t, "Support request not found", r.Body["message"])
	})

	t.Run("status update", func(t *testing.T) {
		path := "/api/seniors/support-requests/" + requestID + "/status"
		r := s.do(http.MethodPatch, path, map[string]any{"status": "DONE"})
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Equal(t, "Invalid status", r.Body["message"])

		r = s.do(http.MethodPut, path, map[string]any{"status": "COMPLETED"})
		require.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, "Status updated successfully", r.Body["message"])
		assert.Equal(t, "COMPLETED", data(r)["status"])
		assert.NotEmpty(t, data(r)["completedAt"])
	})
}

func TestSupportRequestValidation(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 1000)

	p := intakePayload("young@example.com")
	p["age"] = 12
	p["consent"] = false
	p["phone"] = "call me"
	r := s.do(http.MethodPost, "/api/seniors/support-requests", p)
	require.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, "Validation failed", r.Body["message"])
	errs := r.Body["errors"].(map[string]any)
	assert.Equal(t, "Age must be between 18 and 120", errs["age"])
	assert.Equal(t, "Consent must be provided (true)", errs["consent"])
	assert.Equal(t, "Invalid phone number", errs["phone"])

	p = intakePayload("typed@example.com")
	p["consent"] = "yes"
	r = s.do(http.MethodPost, "/api/seniors/support-requests", p)
	require.Equal(t, http.StatusBadRequest, r.Code)
	assert.Contains(t, r.Body["errors"], "consent")

	p = intakePayload("words@example.com")
	p["age"] = "seventy"
	r = s.do(http.MethodPost, "/api/seniors/support-requests", p)
	require.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, "age must be a number", r.Body["errors"].(map[string]any)["age"])

	p = intakePayload("minor@example.com")
	p["age"] = "12"
	r = s.do(http.MethodPost, "/api/seniors/support-requests", p)
	require.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, "Age must be between 18 and 120", r.Body["errors"].(map[string]any)["age"])

	r = s.do(http.MethodPost, "/api/seniors/support-requests", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = s.do(http.MethodGet, "/api/seniors/support-requests", nil)
	assert.Equal(t, float64(0), r.Body["total"])
}

func TestSupportRequest_AgeAsString(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 1000)

	p := intakePayload("form@example.com")
	p["age"] = "75"
	r := s.do(http.MethodPost, "/api/seniors/support-requests", p)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)

	v := volunteerPayload("form-volunteer@example.com")
	v["age"] = "34"
	r = s.do(http.MethodPost, "/api/volunteers", v)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, float64(34), data(r)["age"])
}

func TestVolunteersAndPartners(t *testing.T) {
	s := newServer(t, config.AuthConfig{APIKey: adminKey}, 1000)

	r := s.do(http.MethodPost, "/api/volunteers", volunteerPayload("ona@example.com"))
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, true, r.Body["success"])
	id := data(r)["id"].(string)

	r = s.do(http.MethodPost, "/api/volunteers/applications", volunteerPayload("ona@example.com"))
	assert.Equal(t, http.StatusConflict, r.Code)

	short := volunteerPayload("short@example.com")
	short["motivation"] = "help"
	r = s.do(http.MethodPost, "/api/volunteers", short)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Contains(t, r.Body["errors"], "motivation")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/volunteers", nil).Code)
	r = s.do(http.MethodGet, "/api/volunteers", nil, "X-API-Key", adminKey)
	require.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, float64(1), r.Body["total"])
	r = s.do(http.MethodGet, "/api/volunteers/"+id, nil, "X-API-Key", adminKey)
	assert.Equal(t, "ona@example.com", data(r)["email"])

	partner := map[string]any{
		"organizationName": "Vilnius Care",
		"contactPerson":    "Rasa Petraitienė",
		"email":            "care@example.com",
		"phone":            "+370 600 00004",
		"organizationType": "HEALTHCARE",
		"address":          "Gedimino pr. 1, Vilnius",
		"partnershipType":  "service",
		"services":         "Home nursing visits for seniors",
		"goals":            "Reach more seniors in every district",
		"consent":          "yes",
	}
	r = s.do(http.MethodPost, "/api/partners", partner)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "Partner application submitted successfully", r.Body["message"])
	assert.Equal(t, true, data(r)["consent"])
	assert.Equal(t, true, data(r)["isActive"])

	r = s.do(http.MethodPost, "/api/partners", partner)
	assert.Equal(t, http.StatusConflict, r.Code)
}

func TestAssignmentsAndTasks(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 1000)

	requestID := data(s.do(http.MethodPost, "/api/seniors/support-requests", intakePayload("assign@example.com")))["requestId"].(string)
	volunteerID := data(s.do(http.MethodPost, "/api/volunteers", volunteerPayload("helper@example.com")))["id"].(string)

	r := s.do(http.MethodPost, "/api/assignments", map[string]any{"volunteerId": volunteerID, "requestId": requestID})
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	r = s.do(http.MethodPost, "/api/assignments", map[string]any{"volunteerId": volunteerID, "requestId": requestID})
	assert.Equal(t, http.StatusConflict, r.Code)

	r = s.do(http.MethodGet, "/api/seniors/support-requests/"+requestID, nil)
	assert.Equal(t, "ASSIGNED", data(r)["status"])

	r = s.do(http.MethodPost, "/api/seniors/support-requests/"+requestID+"/tasks", map[string]any{
		"volunteerId": volunteerID,
		"title":       "Weekly groceries",
		"description": "Buy bread, milk and fruit",
	})
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	taskID := data(r)["id"].(string)

	r = s.do(http.MethodGet, "/api/seniors/support-requests/"+requestID+"/tasks", nil)
	assert.Equal(t, float64(1), r.Body["total"])

	r = s.do(http.MethodPatch, "/api/tasks/"+taskID+"/complete", map[string]any{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = s.do(http.MethodPatch, "/api/tasks/"+taskID+"/complete", map[string]any{"rating": 5, "feedback": "Lovely"})
	require.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, "completed", data(r)["status"])
	assert.NotEmpty(t, data(r)["completedDate"])
}

func TestBlog(t *testing.T) {
	s := newServer(t, config.AuthConfig{APIKey: adminKey}, 1000)
	admin := []string{"X-API-Key", adminKey}

	r := s.do(http.MethodPost, "/api/blog/categories", map[string]any{"name": "Community Stories"})
	assert.Equal(t, http.StatusUnauthorized, r.Code)

	r = s.do(http.MethodPost, "/api/blog/categories", map[string]any{"name": "Community Stories"}, admin...)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "Category created successfully", r.Body["message"])
	assert.Equal(t, "community-stories", data(r)["slug"])
	categoryID := data(r)["id"].(string)

	r = s.do(http.MethodPost, "/api/blog/categories", map[string]any{"name": "Community Stories"}, admin...)
	assert.Equal(t, http.StatusConflict, r.Code)

	create := func(title, status string, tags ...string) map[string]any {
		r := s.do(http.MethodPost, "/api/blog/posts", map[string]any{
			"title":    title,
			"content":  "# " + title + "\n\nSome **markdown** body.",
			"status":   status,
			"category": categoryID,
			"tags":     tags,
		}, admin...)
		require.Equal(t, http.StatusCreated, r.Code, r.Body)
		assert.Equal(t, "Post created successfully", r.Body["message"])
		return data(r)
	}
	first := create("Why Community Matters", "published", "community")
	create("Safe Connections", "published", "safety", "community")
	draft := create("Unfinished Thoughts", "draft", "community")

	t.Run("list", func(t *testing.T) {
		r := s.do(http.MethodGet, "/api/blog/posts", nil)
		require.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, float64(2), r.Body["total"])
		row := r.Body["data"].([]any)[0].(map[string]any)
		assert.Nil(t, row["content"])
		assert.Equal(t, "community-stories", row["category"].(map[string]any)["slug"])

		r = s.do(http.MethodGet, "/api/blog/posts?status=any", nil)
		assert.Equal(t, float64(3), r.Body["total"])

		r = s.do(http.MethodGet, "/api/blog/posts?category=no-such-category", nil)
		assert.Equal(t, float64(0), r.Body["total"])
		assert.Equal(t, []any{}, r.Body["data"])

		r = s.do(http.MethodGet, "/api/blog/posts?search=SAFE", nil)
		assert.Equal(t, float64(1), r.Body["total"])

		for _, q := range []string{"limit=0", "limit=51", "offset=-1", "limit=ten"} {
			assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/blog/posts?"+q, nil).Code, q)
		}
	})

	t.Run("read counts views", func(t *testing.T) {
		slug := first["slug"].(string)
		r := s.do(http.MethodGet, "/api/blog/posts/"+slug, nil)
		require.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, float64(1), data(r)["views"])
		assert.Contains(t, data(r)["contentHtml"], "<strong>markdown</strong>")
		r = s.do(http.MethodGet, "/api/blog/posts/"+slug, nil)
		assert.Equal(t, float64(2), data(r)["views"])

		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/blog/posts/"+draft["slug"].(string), nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/blog/posts/Not_A_Slug", nil).Code)
	})

	t.Run("related", func(t *testing.T) {
		r := s.do(http.MethodGet, "/api/blog/posts/"+draft["slug"].(string)+"/related", nil)
		require.Equal(t, http.StatusOK, r.Code)
		assert.Len(t, r.Body["data"], 2)

		r = s.do(http.MethodGet, "/api/blog/posts/missing-post/related", nil)
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	t.Run("categories and tags", func(t *testing.T) {
		r := s.do(http.MethodGet, "/api/blog/categories", nil)
		cats := r.Body["data"].([]any)
		require.Len(t, cats, 1)
		assert.Equal(t, float64(2), cats[0].(map[string]any)["postCount"])

		r = s.do(http.MethodGet, "/api/blog/tags", nil)
		tags := r.Body["data"].([]any)
		require.Len(t, tags, 2)
		assert.Equal(t, map[string]any{"name": "community", "count": float64(2)}, tags[0])
	})

	t.Run("update and delete", func(t *testing.T) {
		id := draft["id"].(string)
		r := s.do(http.MethodPatch, "/api/blog/posts/"+id, map[string]any{"status": "published", "content": "Fresh body"}, admin...)
		require.Equal(t, http.StatusOK, r.Code, r.Body)
		assert.Equal(t, "Post updated successfully", r.Body["message"])
		assert.Equal(t, "Fresh body", data(r)["excerpt"])

		r = s.do(http.MethodDelete, "/api/blog/posts/"+id, nil, admin...)
		assert.Equal(t, "Post deleted successfully", r.Body["message"])
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/blog/posts/"+id, nil, admin...).Code)
	})
}

func TestBlog_PostSlug(t *testing.T) {
	s := newServer(t, config.AuthConfig{APIKey: adminKey}, 1000)
	admin := []string{"X-API-Key", adminKey}

	r := s.do(http.MethodPost, "/api/blog/posts", map[string]any{
		"title": "Hello World", "content": "body text", "slug": "my-custom-slug", "status": "published",
	}, admin...)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "my-custom-slug", data(r)["slug"])
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/blog/posts/my-custom-slug", nil).Code)

	r = s.do(http.MethodPost, "/api/blog/posts", map[string]any{"title": "Hello World", "content": "body text"}, admin...)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "hello-world", data(r)["slug"])

	r = s.do(http.MethodPost, "/api/blog/posts", map[string]any{"title": "Bad", "content": "body", "slug": "Not A Slug"}, admin...)
	require.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, "slug must be a valid slug", r.Body["errors"].(map[string]any)["slug"])

	r = s.do(http.MethodPost, "/api/blog/posts", map[string]any{"title": "Other", "content": "body", "slug": "my-custom-slug"}, admin...)
	assert.Equal(t, http.StatusConflict, r.Code)
	assert.Equal(t, "DUPLICATE_KEY", r.Body["code"])
	assert.Equal(t, "slug", r.Body["field"])
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, config.AuthConfig{}, 2)
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/blog/tags", nil).Code, fmt.Sprint(i))
	}
	r := s.do(http.MethodGet, "/api/blog/tags", nil)
	assert.Equal(t, http.StatusTooManyRequests, r.Code)
	assert.Equal(t, middleware.RateLimitMessage, r.Body["message"])

	// Health checks are outside /api and never limited.
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
}
