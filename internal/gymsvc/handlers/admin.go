package handlers

import (
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/go-chi/chi"
)

type createAdminRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_Number"`
}

type updateAdminRequest struct {
	AdminName     *string `json:"AdminName"`
	Email         *string `json:"email"`
	MobileNumber  *string `json:"mobile_Number"`
	BussinessName *string `json:"bussiness_name"`
	Address       *string `json:"address"`
}

type passwordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	admin, err := h.admins.Create(r.Context(), service.CreateAdminInput{
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Admin created successfully", Code: http.StatusCreated, Data: data{"admin": admin}})
}

func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	admin, err := h.admins.Get(r.Context(), adminID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Admin found", Code: http.StatusOK, Data: data{"admin": admin}})
}

func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	var req updateAdminRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	admin, err := h.admins.Update(r.Context(), adminID, models.AdminUpdate{
		AdminName:     req.AdminName,
		Email:         req.Email,
		MobileNumber:  req.MobileNumber,
		BussinessName: req.BussinessName,
		Address:       req.Address,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Admin updated successfully", Code: http.StatusOK, Data: data{"admin": admin}})
}

// ResetAdminPassword lets an admin change only its own password.
func (h *Handler) ResetAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	email := chi.URLParam(r, "email")
	admin, err := h.admins.GetByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ownsAdmin(r, admin.ID.Hex()) {
		h.forbidden(w)
		return
	}
	if err := h.admins.ResetPassword(r.Context(), email, req.NewPassword); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Password updated successfully", Code: http.StatusOK})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	res, err := h.auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Login successful", Code: http.StatusOK, Data: data{"token": res.Token, "user": res.User}})
}

func (h *Handler) ClientLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	res, err := h.auth.ClientLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Login successful", Code: http.StatusOK, Data: data{"token": res.Token, "user": res.User}})
}
