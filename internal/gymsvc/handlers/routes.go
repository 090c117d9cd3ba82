package handlers

import (
	"context"
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// public routes
	r.Get("/", h.RootHandler)
	r.Get("/health", h.HealthHandler)
	r.Post("/add-admins", h.CreateAdmin)
	r.Post("/api/auth/client-login", h.ClientLogin)
	r.Post("/api/auth/admin-login", h.AdminLogin)

	// Secure routes
	r.Group(func(r chi.Router) {
		r.Use(h.tokens.Verifier())
		r.Use(h.tokens.Authenticator())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))

			r.Get("/admin/{adminId}", h.GetAdmin)
			r.Put("/admin/{adminId}", h.UpdateAdmin)
			r.Put("/update-password/{email}", h.ResetAdminPassword)

			r.Post("/add-client", h.AddClient)
			r.Delete("/client/delete/{adminId}", h.DeleteClient)
			r.Get("/clients/{adminId}", h.ListClients)

			r.Post("/attendance", h.MarkAttendance)
			r.Post("/attendance/mark-attendance", h.SweepAttendance)
			r.Patch("/attendance/update", h.CorrectAttendance)
			r.Get("/attendance/{adminId}", h.ListAdminAttendance)

			r.Post("/add-payment", h.AddPayment)
			r.Patch("/payment/update/{paymentId}", h.UpdatePayment)
			r.Delete("/delete-payment/{paymentId}", h.DeletePayment)
			r.Get("/get-payments/admin/{adminId}", h.ListAdminPayments)
			r.Delete("/cleanup", h.CleanupPayments)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleClient))

			r.Get("/client/{clientId}", h.GetClient)
			r.Put("/update-client/{clientId}", h.UpdateClient)
			r.Get("/get-all-attendance/{clientId}", h.ListClientAttendance)
			r.Get("/get-payment/client/{clientId}", h.ListClientPayments)
			r.Put("/client/reset-password/{email}", h.ResetClientPassword)
		})
	})
}

// ownsAdmin reports whether the caller is the admin adminID.
func ownsAdmin(r *http.Request, adminID string) bool {
	p, err := auth.PrincipalFromContext(r.Context())
	return err == nil && p.Role == auth.RoleAdmin && p.ID == adminID
}

// callerID is the id of the authenticated principal, empty when there is none.
func callerID(r *http.Request) string {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		return ""
	}
	return p.ID
}

// canAccessClient lets a client reach only itself and an admin only its own clients.
func (h *Handler) canAccessClient(ctx context.Context, clientID string) (bool, error) {
	p, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return false, nil
	}
	switch p.Role {
	case auth.RoleClient:
		return p.ID == clientID, nil
	case auth.RoleAdmin:
		client, err := h.clients.Get(ctx, clientID)
		if err != nil {
			return false, err
		}
		return client.AdminID.Hex() == p.ID, nil
	}
	return false, nil
}
