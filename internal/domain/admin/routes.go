package admin

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the panel router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Auth routes (no auth required)
	r.Post("/auth/login", h.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.jwtSvc, h.denylist, h.users))

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)
		r.Get("/auth/permissions", h.Permissions)

		// User management
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Patch("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.ListReports)
			r.Post("/", h.CreateReport)
			r.Post("/id-proof", h.UploadIDProof)
			r.Get("/{id}", h.GetReport)
			r.Patch("/{id}", h.UpdateReport)
			r.Delete("/{id}", h.DeleteReport)
		})
	})

	return r
}
