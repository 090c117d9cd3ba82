package service

import (
	"context"
	"errors"

	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	log "github.com/sirupsen/logrus"
)

// TokenSigner issues bearer tokens for an authenticated principal.
type TokenSigner interface {
	Issue(id, role string) (string, error)
}

type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// AuthService checks credentials of admins and clients and issues their tokens.
type AuthService struct {
	admins  AdminStore
	clients ClientStore
	tokens  TokenSigner
}

func NewAuthService(admins AdminStore, clients ClientStore, tokens TokenSigner) *AuthService {
	return &AuthService{admins: admins, clients: clients, tokens: tokens}
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, validationf("email and password are required")
	}
	admin, err := s.admins.GetAdminByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Admin not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load admin", err)
	}
	if !auth.CheckPassword(admin.Password, password) {
		log.WithField("admin_id", admin.ID.Hex()).Warn("admin login rejected")
		return nil, unauthenticated("Invalid credentials")
	}
	return s.issue(admin.ID.Hex(), auth.RoleAdmin, admin.AdminName, admin.Email)
}

func (s *AuthService) ClientLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, validationf("email and password are required")
	}
	client, err := s.clients.GetClientByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load client", err)
	}
	if !auth.CheckPassword(client.Password, password) {
		log.WithField("client_id", client.ID.Hex()).Warn("client login rejected")
		return nil, unauthenticated("Invalid credentials")
	}
	return s.issue(client.ID.Hex(), auth.RoleClient, client.Name, client.Email)
}

func (s *AuthService) issue(id, role, name, email string) (*LoginResult, error) {
	token, err := s.tokens.Issue(id, role)
	if err != nil {
		return nil, storeErr("Failed to issue token", err)
	}
	return &LoginResult{Token: token, User: LoginUser{ID: id, Name: name, Email: email}}, nil
}
