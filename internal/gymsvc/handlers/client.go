package handlers

import (
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/go-chi/chi"
)

type addClientRequest struct {
	AdminID       string               `json:"adminId"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Password      string               `json:"password"`
	DateOfJoining string               `json:"dateOfJoining"`
	PaymentType   models.PaymentType   `json:"paymentType"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

type updateClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type deleteClientRequest struct {
	ClientID string `json:"clientId"`
}

func (h *Handler) AddClient(w http.ResponseWriter, r *http.Request) {
	var req addClientRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.AdminID != "" && !ownsAdmin(r, req.AdminID) {
		h.forbidden(w)
		return
	}
	res, err := h.clients.Onboard(r.Context(), service.OnboardInput{
		AdminID:       req.AdminID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		DateOfJoining: req.DateOfJoining,
		PaymentType:   req.PaymentType,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{
		Message: "Client and attendance added successfully",
		Code:    http.StatusCreated,
		Data:    data{"client": res.Client, "attendance": res.Attendance},
	})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if !h.authorizeClient(w, r, clientID) {
		return
	}
	client, err := h.clients.Get(r.Context(), clientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Client found", Code: http.StatusOK, Data: data{"client": client}})
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	clients, err := h.clients.ListByAdmin(r.Context(), adminID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Clients found", Code: http.StatusOK, Data: data{"clients": clients}})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if !h.authorizeClient(w, r, clientID) {
		return
	}
	var req updateClientRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	client, err := h.clients.Update(r.Context(), clientID, service.UpdateClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Client updated successfully", Code: http.StatusOK, Data: data{"client": client}})
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	var req deleteClientRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.ClientID == "" {
		h.badRequest(w, "Admin ID and Client ID are required")
		return
	}
	if err := h.clients.Delete(r.Context(), adminID, req.ClientID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Client deleted successfully", Code: http.StatusOK})
}

// ResetClientPassword is open to the member itself and to its owning admin.
func (h *Handler) ResetClientPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	email := chi.URLParam(r, "email")
	client, err := h.clients.GetByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !h.authorizeClient(w, r, client.ID.Hex()) {
		return
	}
	if err := h.clients.ResetPassword(r.Context(), email, req.NewPassword); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Password updated successfully", Code: http.StatusOK})
}

// authorizeClient answers the request itself and returns false when the caller may not reach clientID.
func (h *Handler) authorizeClient(w http.ResponseWriter, r *http.Request, clientID string) bool {
	ok, err := h.canAccessClient(r.Context(), clientID)
	if err != nil {
		h.writeError(w, r, err)
		return false
	}
	if !ok {
		h.forbidden(w)
	}
	return ok
}
