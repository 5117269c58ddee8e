package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ENW_BACK-END/internal/handlers"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Health     *handlers.HealthHandler
	Seniors    *handlers.SeniorHandler
	Volunteers *handlers.VolunteerHandler
	Partners   *handlers.PartnerHandler
	Assign     *handlers.AssignmentHandler
	Blog       *handlers.BlogHandler
}

// Options wires cross-cutting concerns into the router.
type Options struct {
	Adapter handlers.Adapter
	// Admin guards administrative routes.
	Admin func(http.Handler) http.Handler
	// API wraps every /api route, typically the rate limiter.
	API func(http.Handler) http.Handler
}

func identity(h http.Handler) http.Handler { return h }

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, opts Options) *http.ServeMux {
	if opts.Admin == nil {
		opts.Admin = identity
	}
	if opts.API == nil {
		opts.API = identity
	}
	wrap := opts.Adapter.Wrap
	api := func(h http.Handler) http.Handler { return opts.API(h) }
	admin := func(h http.Handler) http.Handler { return opts.API(opts.Admin(h)) }

	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	mux.Handle("GET /api", api(http.HandlerFunc(handlers.APIIndex)))

	// Seniors
	intake := api(wrap(h.Seniors.SubmitSupportRequest))
	mux.Handle("POST /api/seniors/support-requests", intake)
	mux.Handle("POST /api/seniors/support-request", intake)
	mux.Handle("GET /api/seniors/support-requests", api(wrap(h.Seniors.ListSupportRequests)))
	mux.Handle("GET /api/seniors/support-requests/{id}", api(wrap(h.Seniors.GetSupportRequest)))
	status := api(wrap(h.Seniors.UpdateStatus))
	for _, p := range []string{"/api/seniors/support-requests/{id}/status", "/api/seniors/support-request/{id}/status"} {
		mux.Handle("PUT "+p, status)
		mux.Handle("PATCH "+p, status)
	}
	mux.Handle("GET /api/seniors/support-requests/{id}/tasks", api(wrap(h.Seniors.ListTasks)))
	mux.Handle("POST /api/seniors/support-requests/{id}/tasks", admin(wrap(h.Seniors.CreateTask)))

	// Volunteers
	mux.Handle("GET /api/volunteers/ping", api(http.HandlerFunc(h.Volunteers.Ping)))
	mux.Handle("POST /api/volunteers", api(wrap(h.Volunteers.Create)))
	mux.Handle("POST /api/volunteers/applications", api(wrap(h.Volunteers.Create)))
	mux.Handle("GET /api/volunteers", admin(wrap(h.Volunteers.List)))
	mux.Handle("GET /api/volunteers/{id}", admin(wrap(h.Volunteers.Get)))

	// Partners
	mux.Handle("GET /api/partners/ping", api(http.HandlerFunc(h.Partners.Ping)))
	mux.Handle("POST /api/partners", api(wrap(h.Partners.Create)))

	// Assignments and tasks
	mux.Handle("POST /api/assignments", admin(wrap(h.Assign.Assign)))
	mux.Handle("PATCH /api/tasks/{id}/complete", admin(wrap(h.Assign.CompleteTask)))

	// Blog
	mux.Handle("GET /api/blog/posts", api(wrap(h.Blog.ListPosts)))
	mux.Handle("GET /api/blog/posts/{slug}", api(wrap(h.Blog.GetPost)))
	mux.Handle("GET /api/blog/posts/{slug}/related", api(wrap(h.Blog.RelatedPosts)))
	mux.Handle("GET /api/blog/categories", api(wrap(h.Blog.Categories)))
	mux.Handle("GET /api/blog/tags", api(wrap(h.Blog.Tags)))
	mux.Handle("POST /api/blog/posts", admin(wrap(h.Blog.CreatePost)))
	mux.Handle("PATCH /api/blog/posts/{id}", admin(wrap(h.Blog.UpdatePost)))
	mux.Handle("PUT /api/blog/posts/{id}", admin(wrap(h.Blog.UpdatePost)))
	mux.Handle("DELETE /api/blog/posts/{id}", admin(wrap(h.Blog.DeletePost)))
	mux.Handle("POST /api/blog/categories", admin(wrap(h.Blog.CreateCategory)))

	// API docs
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", handlers.NotFound)

	return mux
}
