package handlers

import (
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type addPaymentRequest struct {
	PaymentID     string                   `json:"paymentId"`
	ClientID      string                   `json:"clientId"`
	AdminID       string                   `json:"adminId"`
	AmountPaid    *decimal.Decimal         `json:"amountPaid"`
	TotalAmount   *decimal.Decimal         `json:"totalAmount"`
	DueAmount     *decimal.Decimal         `json:"dueAmount"`
	PaymentDate   string                   `json:"paymentDate"`
	NextDueDate   string                   `json:"nextDueDate"`
	PaymentMode   models.PaymentMode       `json:"paymentMode"`
	TransactionID *string                  `json:"transactionId"`
	Status        models.TransactionStatus `json:"status"`
	Notes         string                   `json:"notes"`
	ClientName    string                   `json:"clientname"`
}

type updatePaymentRequest struct {
	Status      *string          `json:"status"`
	PaymentMode *string          `json:"paymentMode"`
	AmountPaid  *decimal.Decimal `json:"amountPaid"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	DueAmount   *decimal.Decimal `json:"dueAmount"`
	PaymentDate *string          `json:"paymentDate"`
	NextDueDate *string          `json:"nextDueDate"`
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req addPaymentRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.AdminID != "" && !ownsAdmin(r, req.AdminID) {
		h.forbidden(w)
		return
	}
	payment, err := h.payments.Record(r.Context(), service.RecordInput{
		PaymentID:     req.PaymentID,
		ClientID:      req.ClientID,
		AdminID:       req.AdminID,
		AmountPaid:    req.AmountPaid,
		TotalAmount:   req.TotalAmount,
		DueAmount:     req.DueAmount,
		PaymentDate:   req.PaymentDate,
		NextDueDate:   req.NextDueDate,
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Notes:         req.Notes,
		ClientName:    req.ClientName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Payment added successfully", Code: http.StatusCreated, Data: data{"payment": payment}})
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	payment, err := h.payments.Update(r.Context(), callerID(r), chi.URLParam(r, "paymentId"), service.UpdatePaymentInput{
		Status:      req.Status,
		PaymentMode: req.PaymentMode,
		AmountPaid:  req.AmountPaid,
		TotalAmount: req.TotalAmount,
		DueAmount:   req.DueAmount,
		PaymentDate: req.PaymentDate,
		NextDueDate: req.NextDueDate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Payment updated successfully", Code: http.StatusOK, Data: data{"payment": payment}})
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.Delete(r.Context(), callerID(r), chi.URLParam(r, "paymentId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Payment deleted successfully", Code: http.StatusOK, Data: data{"payment": payment}})
}

func (h *Handler) ListClientPayments(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if !h.authorizeClient(w, r, clientID) {
		return
	}
	payments, err := h.payments.ListByClient(r.Context(), clientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Payments found", Code: http.StatusOK, Data: data{"payments": payments}})
}

func (h *Handler) ListAdminPayments(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if !ownsAdmin(r, adminID) {
		h.forbidden(w)
		return
	}
	payments, err := h.payments.ListByAdmin(r.Context(), adminID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "Payments found", Code: http.StatusOK, Data: data{"payments": payments}})
}

func (h *Handler) CleanupPayments(w http.ResponseWriter, r *http.Request) {
	res, err := h.payments.Purge(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{
		Message: "Old payments deleted successfully",
		Code:    http.StatusOK,
		Data:    data{"deleted": res.Deleted, "cutoff": res.Cutoff},
	})
}
