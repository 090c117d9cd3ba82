package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	admins     *service.AdminService
	clients    *service.ClientService
	attendance *service.AttendanceService
	payments   *service.PaymentService
	auth       *service.AuthService
	tokens     *auth.TokenIssuer
	port       string
}

// Services groups what the gateway routes to.
type Services struct {
	Admins     *service.AdminService
	Clients    *service.ClientService
	Attendance *service.AttendanceService
	Payments   *service.PaymentService
	Auth       *service.AuthService
}

func NewHandler(svc Services, tokens *auth.TokenIssuer, port string) *Handler {
	return &Handler{
		admins:     svc.Admins,
		clients:    svc.Clients,
		attendance: svc.Attendance,
		payments:   svc.Payments,
		auth:       svc.Auth,
		tokens:     tokens,
		port:       port,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// data is the keyed payload carried in Response.Data.
type data map[string]interface{}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Warnf("write response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(service.KindOf(err))
	rsp := Response{Message: service.MessageOf(err), Code: code}
	if code >= http.StatusInternalServerError {
		log.WithFields(log.Fields{"method": r.Method, "uri": r.RequestURI}).Errorf("request failed: %v", err)
		rsp.Error = http.StatusText(code)
	}
	h.CreateResponse(w, rsp)
}

func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindAuthentication:
		return http.StatusUnauthorized
	case service.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.CreateResponse(w, Response{Message: message, Code: http.StatusBadRequest})
}

func (h *Handler) forbidden(w http.ResponseWriter) {
	h.CreateResponse(w, Response{Message: "You are not allowed to access this resource", Code: http.StatusForbidden})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{Message: "Gym management API is running", Code: http.StatusOK})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "gym service is running at port " + h.port,
		Code:    http.StatusOK,
	})
}
