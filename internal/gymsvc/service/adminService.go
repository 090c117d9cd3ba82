package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	log "github.com/sirupsen/logrus"
)

type CreateAdminInput struct {
	Email        string
	Password     string
	MobileNumber string
}

// AdminService manages gym owner accounts.
type AdminService struct {
	store AdminStore
}

func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// Create registers an owner with placeholder profile fields the owner fills in later.
func (s *AdminService) Create(ctx context.Context, in CreateAdminInput) (*models.Admin, error) {
	if in.Password == "" {
		return nil, validationf("Password is required")
	}
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, validationf("A valid email is required")
	}
	mobile := strings.TrimSpace(in.MobileNumber)
	if !validPhone(mobile) {
		return nil, validationf("mobile_Number must be 10 digits")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, storeErr("Failed to create admin", err)
	}

	admin := &models.Admin{
		AdminName:     models.DefaultAdminName,
		Email:         email,
		Password:      hash,
		MobileNumber:  mobile,
		BussinessName: models.DefaultBussinessName,
		Address:       models.DefaultAddress,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		log.WithField("email", email).Warnf("create admin failed: %v", err)
		return nil, storeErr("Failed to create admin", err)
	}
	log.WithField("admin_id", admin.ID.Hex()).Info("admin created")
	return admin, nil
}

func (s *AdminService) Get(ctx context.Context, adminID string) (*models.Admin, error) {
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	admin, err := s.store.GetAdminByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Admin not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load admin", err)
	}
	return admin, nil
}

func (s *AdminService) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin, err := s.store.GetAdminByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Admin not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load admin", err)
	}
	return admin, nil
}

// Update patches the profile fields present in u.
func (s *AdminService) Update(ctx context.Context, adminID string, u models.AdminUpdate) (*models.Admin, error) {
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	if u.Empty() {
		return nil, validationf("No update data provided")
	}
	if u.Email != nil {
		email := normalizeEmail(*u.Email)
		if !validEmail(email) {
			return nil, validationf("A valid email is required")
		}
		u.Email = &email
	}
	if u.MobileNumber != nil && !validPhone(*u.MobileNumber) {
		return nil, validationf("mobile_Number must be 10 digits")
	}
	for _, field := range []*string{u.AdminName, u.BussinessName, u.Address} {
		if field != nil {
			*field = strings.TrimSpace(*field)
			if *field == "" {
				return nil, validationf("Profile fields cannot be blank")
			}
		}
	}

	admin, err := s.store.UpdateAdmin(ctx, id, u)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Admin not found")
	}
	if err != nil {
		return nil, storeErr("Failed to update admin", err)
	}
	return admin, nil
}

func (s *AdminService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return validationf("New password is required")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return storeErr("Failed to update password", err)
	}
	err = s.store.SetAdminPassword(ctx, normalizeEmail(email), hash)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Admin not found")
	}
	if err != nil {
		return storeErr("Failed to update password", err)
	}
	return nil
}
