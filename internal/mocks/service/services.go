// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"notekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock type for the PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher registers the mock with t and asserts expectations on cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Hash provides a mock function with given fields: password
func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	return ret.String(0), ret.Error(1)
}

// Check provides a mock function with given fields: password, hash
func (_m *MockPasswordHasher) Check(password, hash string) bool {
	ret := _m.Called(password, hash)

	return ret.Bool(0)
}

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService registers the mock with t and asserts expectations on cleanup.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// IssueToken provides a mock function with given fields: userID, email
func (_m *MockTokenService) IssueToken(userID uuid.UUID, email string) (string, error) {
	ret := _m.Called(userID, email)

	return ret.String(0), ret.Error(1)
}

// ValidateToken provides a mock function with given fields: tokenString
func (_m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	ret := _m.Called(tokenString)
	claims, _ := ret.Get(0).(*service.Claims)

	return claims, ret.Error(1)
}

// TTL provides a mock function with no fields
func (_m *MockTokenService) TTL() time.Duration {
	ret := _m.Called()
	ttl, _ := ret.Get(0).(time.Duration)

	return ttl
}

// MockOAuthService is a mock type for the OAuthService type
type MockOAuthService struct {
	mock.Mock
}

// NewMockOAuthService registers the mock with t and asserts expectations on cleanup.
func NewMockOAuthService(t testingT) *MockOAuthService {
	m := &MockOAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// AuthCodeURL provides a mock function with given fields: state
func (_m *MockOAuthService) AuthCodeURL(state string) string {
	ret := _m.Called(state)

	return ret.String(0)
}

// Exchange provides a mock function with given fields: ctx, code
func (_m *MockOAuthService) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	ret := _m.Called(ctx, code)
	user, _ := ret.Get(0).(*service.OAuthUser)

	return user, ret.Error(1)
}
