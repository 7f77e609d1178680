// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	sess          *store.Session
	cfg           *config.Config
	notifications *NotificationService
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,role"`
}

type DemoLoginRequest struct {
	Role string `json:"role" validate:"required,role"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        models.Identity `json:"user"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // in seconds
}

func NewAuthService(sess *store.Session, cfg *config.Config, notifications *NotificationService) *AuthService {
	return &AuthService{
		sess:          sess,
		cfg:           cfg,
		notifications: notifications,
	}
}

// Login signs in as a shopper or trader. There is no password: the email
// selects a seeded identity or creates one.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	id, err := s.sess.Identity.Login(req.Email, role)
	if err != nil {
		return nil, err
	}
	return s.issue(id)
}

func (s *AuthService) LoginAsDemo(req *DemoLoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == models.RoleAdmin {
		return nil, store.ErrAdminLoginRequired
	}

	id, err := s.sess.Identity.LoginAsDemo(role)
	if err != nil {
		return nil, err
	}
	return s.issue(id)
}

func (s *AuthService) AdminLogin(req *AdminLoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ok, err := s.sess.Identity.AdminLogin(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		logrus.WithField("email", req.Email).Warn("Rejected admin login")
		s.notifications.Error(i18n.KeyAuthInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	id, _ := s.sess.Identity.Current()
	return s.issue(id)
}

func (s *AuthService) Logout() error {
	if err := s.sess.Identity.Logout(); err != nil {
		return err
	}
	s.notifications.Success(i18n.KeyAuthLogoutSuccess)
	return nil
}

// Current returns the session identity when its token subject still matches.
func (s *AuthService) Current(userID string) (models.Identity, bool) {
	id, ok := s.sess.Identity.Current()
	if !ok || id.Profile().ID != userID {
		return nil, false
	}
	return id, true
}

func (s *AuthService) issue(id models.Identity) (*AuthResponse, error) {
	profile := id.Profile()
	token, err := utils.GenerateJWT(profile.ID, profile.Name, string(id.Role()), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if id.Role() == models.RoleAdmin {
		s.notifications.Success(i18n.KeyAuthWelcomeAdmin)
	} else {
		s.notifications.Success(i18n.KeyAuthWelcome, profile.Name)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": profile.ID,
		"role":    id.Role(),
	}).Info("Signed in")

	return &AuthResponse{
		User:        id,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
