package handlers

import (
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/go-chi/chi"
)

type markAttendanceRequest struct {
	ClientID   string                  `json:"clientId"`
	AdminID    string                  `json:"adminId"`
	Date       string                  `json:"date"`
	Status     models.AttendanceStatus `json:"status"`
	ClientName string                  `json:"clientname"`
}

type sweepRequest struct {
	AdminID string `json:"adminId"`
}

type correctAttendanceRequest struct {
	AttendanceID string                  `json:"attendanceId"`
	Status       models.AttendanceStatus `json:"status"`
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.AdminID != "" && !ownsAdmin(r, req.AdminID) {
		h.forbidden(w)
		return
	}
	entry, err := h.attendance.Mark(r.Context(), service.MarkInput{
		ClientID:   req.ClientID,
		AdminID:    req.AdminID,
		Date:       req.Date,
		Status:     req.Status,
		ClientName: req.ClientName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Attendance recorded successfully", Code: http.StatusCreated, Data: data{"attendance": entry}})
}

func (h *Handler) SweepAttendance(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.AdminID != "" && !ownsAdmin(r, req.AdminID) {
		h.forbidden(w)
		return
	}
	res, err := h.attendance.SweepAbsent(r.Context(), req.AdminID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{
		Message: "Attendance marked as Absent for all clients",
		Code:    http.StatusCreated,
		Data:    data{"totalClients": res.TotalClients, "marked": res.Marked},
	})
}

func (h *Handler) CorrectAttendance(w http.ResponseWriter, r *http.Request) {
	var req correctAttendanceRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	entry, err := h.attendance.Correct(r.Context(), callerID(r), req.AttendanceID, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Attendance updated successfully", Code: http.StatusOK, Data: data{"attendance": entry}})
}

func (h *Handler) ListAdminAttendance(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	entries, err := h.attendance.ListByAdmin(r.Context(), adminID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Attendance records found", Code: http.StatusOK, Data: data{"attendance": entries}})
}

func (h *Handler) ListClientAttendance(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if !h.authorizeClient(w, r, clientID) {
		return
	}
	entries, err := h.attendance.ListByClient(r.Context(), clientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Attendance records found", Code: http.StatusOK, Data: data{"attendance": entries}})
}
