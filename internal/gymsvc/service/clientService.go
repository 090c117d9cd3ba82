package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	log "github.com/sirupsen/logrus"
)

// OnboardInput is the request to enroll a new client under an admin.
type OnboardInput struct {
	AdminID       string
	Name          string
	Email         string
	Phone         string
	Password      string
	DateOfJoining string
	PaymentType   models.PaymentType
	PaymentStatus models.PaymentStatus
}

type OnboardResult struct {
	Client     *models.Client
	Attendance *models.Attendance
}

type UpdateClientInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

var errInvalidOwner = validationf("Invalid adminId. Admin does not exist.")

// ClientService manages gym members. Members are only ever created through Onboard.
type ClientService struct {
	store  Store
	events Events
	now    func() time.Time
}

func NewClientService(store Store, events Events) *ClientService {
	if events == nil {
		events = NoopEvents{}
	}
	return &ClientService{store: store, events: events, now: time.Now}
}

// Onboard creates the client and its first attendance row (today, Present) in one transaction.
// When the admin does not exist nothing is written.
func (s *ClientService) Onboard(ctx context.Context, in OnboardInput) (*OnboardResult, error) {
	adminID, err := parseID("adminId", in.AdminID)
	if err != nil {
		return nil, errInvalidOwner
	}
	client, err := s.newClient(in)
	if err != nil {
		return nil, err
	}
	client.AdminID = adminID

	var attendance *models.Attendance
	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetAdminByID(ctx, adminID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errInvalidOwner
			}
			return err
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return err
		}
		client.Password = hash

		if err := s.store.CreateClient(ctx, client); err != nil {
			return err
		}

		attendance = &models.Attendance{
			ClientID:   client.ID,
			AdminID:    adminID,
			Date:       models.FormatDay(s.now()),
			Status:     models.Present,
			ClientName: client.Name,
		}
		return s.store.InsertAttendance(ctx, attendance)
	})
	if err != nil {
		log.WithFields(log.Fields{"admin_id": in.AdminID, "email": client.Email}).Warnf("onboard client aborted: %v", err)
		return nil, storeErr("Failed to add client", err)
	}

	log.WithFields(log.Fields{"admin_id": adminID.Hex(), "client_id": client.ID.Hex()}).Info("client onboarded")
	s.events.Publish(comm.EventClientOnboarded, comm.ClientOnboarded{
		ClientID: client.ID.Hex(),
		AdminID:  adminID.Hex(),
		Name:     client.Name,
		Date:     attendance.Date,
	})
	return &OnboardResult{Client: client, Attendance: attendance}, nil
}

func (s *ClientService) newClient(in OnboardInput) (*models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationf("name is required")
	}
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, validationf("A valid email is required")
	}
	phone := strings.TrimSpace(in.Phone)
	if !validPhone(phone) {
		return nil, validationf("phone must be 10 digits")
	}
	if in.Password == "" {
		return nil, validationf("password is required")
	}
	if !in.PaymentType.Valid() {
		return nil, validationf("paymentType must be one of Monthly, Quarterly, Yearly")
	}
	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	if !status.Valid() {
		return nil, validationf("paymentStatus must be one of Pending, Paid, Overdue")
	}
	joined := s.now().UTC()
	if strings.TrimSpace(in.DateOfJoining) != "" {
		t, err := models.ParseDate(in.DateOfJoining)
		if err != nil {
			return nil, validationf("dateOfJoining: %v", err)
		}
		joined = t
	}

	return &models.Client{
		Name:          name,
		Email:         email,
		Phone:         phone,
		DateOfJoining: joined,
		PaymentType:   in.PaymentType,
		PaymentStatus: status,
	}, nil
}

func (s *ClientService) Get(ctx context.Context, clientID string) (*models.Client, error) {
	id, err := parseID("clientId", clientID)
	if err != nil {
		return nil, err
	}
	client, err := s.store.GetClientByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load client", err)
	}
	return client, nil
}

func (s *ClientService) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	client, err := s.store.GetClientByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load client", err)
	}
	return client, nil
}

func (s *ClientService) ListByAdmin(ctx context.Context, adminID string) ([]models.Client, error) {
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	clients, err := s.store.ListClientsByAdmin(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list clients", err)
	}
	if len(clients) == 0 {
		return nil, notFound("No clients found for this admin")
	}
	return clients, nil
}

// Update changes the non-empty fields of in; a new password is hashed before storage.
func (s *ClientService) Update(ctx context.Context, clientID string, in UpdateClientInput) (*models.Client, error) {
	id, err := parseID("clientId", clientID)
	if err != nil {
		return nil, err
	}

	var u models.ClientUpdate
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = &name
	}
	if in.Email != "" {
		email := normalizeEmail(in.Email)
		if !validEmail(email) {
			return nil, validationf("A valid email is required")
		}
		u.Email = &email
	}
	if in.Phone != "" {
		phone := strings.TrimSpace(in.Phone)
		if !validPhone(phone) {
			return nil, validationf("phone must be 10 digits")
		}
		u.Phone = &phone
	}
	if u.Empty() && in.Password == "" {
		return nil, validationf("No update data provided")
	}

	if _, err := s.store.GetClientByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Client not found")
		}
		return nil, storeErr("Failed to load client", err)
	}

	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, storeErr("Failed to update client", err)
		}
		u.Password = &hash
	}

	client, err := s.store.UpdateClient(ctx, id, u)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to update client", err)
	}
	return client, nil
}

// Delete removes the client only when it belongs to adminID.
func (s *ClientService) Delete(ctx context.Context, adminID, clientID string) error {
	aid, err := parseID("adminId", adminID)
	if err != nil {
		return err
	}
	cid, err := parseID("clientId", clientID)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteClient(ctx, aid, cid)
	if err != nil {
		return storeErr("Failed to delete client", err)
	}
	if !deleted {
		return notFound("Client not found or does not belong to this admin")
	}
	log.WithFields(log.Fields{"admin_id": adminID, "client_id": clientID}).Info("client deleted")
	return nil
}

func (s *ClientService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return validationf("New password is required")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return storeErr("Failed to update password", err)
	}
	err = s.store.SetClientPassword(ctx, normalizeEmail(email), hash)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Client not found")
	}
	if err != nil {
		return storeErr("Failed to update password", err)
	}
	return nil
}
