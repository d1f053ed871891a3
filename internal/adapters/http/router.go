package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	CORSOrigins []string
	// Ready reports whether the backing services answer; nil means always ready.
	Ready func(ctx context.Context) error
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				logHTTPOperationError(r.Context(), "readiness", http.StatusServiceUnavailable, "not ready", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", handler.login)

		r.Group(func(r chi.Router) {
			r.Use(actorMiddleware(handler.service))

			r.Get("/users", handler.listUsers)
			r.Post("/users", handler.createUser)
			r.Get("/users/me", handler.getMe)
			r.Patch("/users/me", handler.updateMe)
			r.Get("/users/me/posts", handler.listMyPosts)

			r.Get("/teams", handler.listMyTeams)
			r.Get("/teams/{teamId}", handler.getTeam)
			r.Get("/teams/{teamId}/members", handler.listTeamMembers)
			r.Post("/teams/{teamId}/members", handler.addTeamMember)

			r.Get("/social-platforms", handler.listSocialPlatforms)
			r.Post("/social-platforms", handler.createSocialPlatform)
			r.Patch("/social-platforms/{id}", handler.updateSocialPlatform)

			r.Get("/posts", handler.listPosts)
			r.Post("/posts", handler.createPost)
			r.Get("/posts/scheduled", handler.listScheduledPosts)
			r.Get("/posts/today", handler.listTodayPosts)
			r.Post("/posts/bulk-schedule", handler.bulkSchedule)
			r.Get("/posts/{id}", handler.getPost)
			r.Patch("/posts/{id}", handler.updatePost)
			r.Delete("/posts/{id}", handler.deletePost)
			r.Get("/posts/{id}/analytics", handler.listPostAnalytics)
			r.Post("/posts/{id}/analytics", handler.createPostAnalytics)

			r.Get("/templates", handler.listTemplates)
			r.Post("/templates", handler.createTemplate)

			r.Get("/activities", handler.listActivities)

			r.Get("/analytics/overview", handler.overview)
			r.Get("/analytics/team-performance", handler.teamPerformance)
			r.Get("/analytics/snapshots", handler.teamAnalytics)
		})
	})
	return r
}
