package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/repository"
	"github.com/smartlib/circulation-service/pkg/auth"
	cb "github.com/smartlib/circulation-service/pkg/circuit_breaker"
)

// AdminService manages librarian accounts. Passwords are stored only as
// bcrypt hashes.
type AdminService struct {
	log     *zap.Logger
	admins  repository.AdminRepository
	gateway NotificationGateway
	breaker cb.CircuitBreaker
}

func NewAdminService(admins repository.AdminRepository, gateway NotificationGateway, breaker cb.CircuitBreaker, log *zap.Logger) *AdminService {
	return &AdminService{
		log:     log.Named("admin"),
		admins:  admins,
		gateway: gateway,
		breaker: breaker,
	}
}

func (s *AdminService) Authorize(ctx context.Context, req model.AuthRequest) (model.AuthResponse, model.Admin, error) {
	admin, err := s.admins.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, model.Admin{}, errs.ErrInvalidCreds
		}
		return model.AuthResponse{}, model.Admin{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return model.AuthResponse{}, model.Admin{}, errs.ErrInvalidCreds
	}

	token, expiresIn, err := auth.NewToken(admin.Username, admin.Email, time.Now())
	if err != nil {
		return model.AuthResponse{}, model.Admin{}, err
	}
	return model.AuthResponse{AccessToken: token, ExpiresIn: expiresIn}, admin, nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, req model.CreateAdminRequest) (model.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Admin{}, err
	}

	admin, err := s.admins.CreateAdmin(ctx, model.Admin{
		FullName:     req.FullName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return model.Admin{}, err
	}

	// welcome mail is best effort: the account exists either way
	if req.SendEmail {
		subject := "Welcome to SmartLib - Admin Access"
		body := fmt.Sprintf("<p>Hello %s,</p><p>You have been granted admin access to the SmartLib library management system.</p><p>Your username is <b>%s</b>. Please log in and set your own password.</p>",
			req.FullName, req.Username)
		if err := s.breaker.Call(func() error {
			return s.gateway.Send(req.Email, subject, body)
		}); err != nil {
			s.log.Warn("welcome mail", zap.String("username", req.Username), zap.Error(err))
		}
	}

	return admin, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.admins.ListAdmins(ctx)
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id int) error {
	return s.admins.DeleteAdmin(ctx, id)
}

// EnsureBootstrapAdmin creates the first account when the store is empty, so
// a fresh deployment can log in.
func (s *AdminService) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	count, err := s.admins.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.CreateAdmin(ctx, model.CreateAdminRequest{
		FullName: "Administrator",
		Email:    email,
		Username: username,
		Password: password,
	})
	if errors.Is(err, errs.ErrAdminExists) {
		return nil
	}
	return err
}
