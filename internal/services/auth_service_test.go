// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	sess          *store.Session
	notifications *NotificationService
	auth          *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.sess = openTestSession(s.T())
	s.notifications = NewNotificationService("en", 0)
	s.auth = NewAuthService(s.sess, testConfig(), s.notifications)
}

func (s *AuthServiceTestSuite) TestLoginIssuesToken() {
	resp, err := s.auth.Login(&LoginRequest{Email: "john@example.com", Role: "shopper"})
	s.Require().NoError(err)

	s.Equal("user-1", resp.User.Profile().ID)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(3600, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	s.Require().NoError(err)
	s.Equal("user-1", claims.UserID)
	s.Equal("shopper", claims.Role)

	id, ok := s.auth.Current("user-1")
	s.True(ok)
	s.Equal(models.RoleShopper, id.Role())

	_, ok = s.auth.Current("user-2")
	s.False(ok)
}

func (s *AuthServiceTestSuite) TestLoginAcceptsLegacyUserRole() {
	resp, err := s.auth.Login(&LoginRequest{Email: "jane@example.com", Role: "user"})
	s.Require().NoError(err)
	s.Equal(models.RoleShopper, resp.User.Role())
}

func (s *AuthServiceTestSuite) TestLoginValidation() {
	_, err := s.auth.Login(&LoginRequest{Email: "not-an-email", Role: "shopper"})
	var verrs validator.ValidationErrors
	s.ErrorAs(err, &verrs)

	_, err = s.auth.Login(&LoginRequest{Email: "a@b.com", Role: "admin"})
	s.ErrorIs(err, store.ErrAdminLoginRequired)
}

func (s *AuthServiceTestSuite) TestDemoLogin() {
	resp, err := s.auth.LoginAsDemo(&DemoLoginRequest{Role: "trader"})
	s.Require().NoError(err)
	s.Equal("trader-1", resp.User.Profile().ID)

	_, err = s.auth.LoginAsDemo(&DemoLoginRequest{Role: "admin"})
	s.ErrorIs(err, store.ErrAdminLoginRequired)
}

func (s *AuthServiceTestSuite) TestAdminLogin() {
	_, err := s.auth.AdminLogin(&AdminLoginRequest{Email: "admin@marketplace.com", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)
	s.False(s.sess.Identity.IsAuthenticated())
	s.Equal(NotificationError, s.notifications.Recent(1)[0].Level)

	resp, err := s.auth.AdminLogin(&AdminLoginRequest{Email: "admin@marketplace.com", Password: "admin123"})
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, resp.User.Role())
}

func (s *AuthServiceTestSuite) TestLogoutEndsSession() {
	_, err := s.auth.LoginAsDemo(&DemoLoginRequest{Role: "shopper"})
	s.Require().NoError(err)

	s.Require().NoError(s.auth.Logout())
	_, ok := s.auth.Current("user-1")
	s.False(ok)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestNotificationServiceKeepsNewestFirst(t *testing.T) {
	svc := NewNotificationService("en", 3)
	for _, key := range []string{"a", "b", "c", "d"} {
		svc.Success(key)
	}

	recent := svc.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Key)
	assert.Equal(t, "b", recent[2].Key)
	assert.Len(t, svc.Recent(2), 2)

	svc.Clear()
	assert.Empty(t, svc.Recent(0))
}
