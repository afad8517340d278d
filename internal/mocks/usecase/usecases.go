// Package usecase provides testify mocks for the application use cases.
package usecase

import (
	"context"

	"notekeeper/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserUsecase is a mock type for the UserUsecase type
type MockUserUsecase struct {
	mock.Mock
}

// NewMockUserUsecase registers the mock with t and asserts expectations on cleanup.
func NewMockUserUsecase(t testingT) *MockUserUsecase {
	m := &MockUserUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// RegisterUser provides a mock function with given fields: ctx, input
func (_m *MockUserUsecase) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	ret := _m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.RegisterOutput)

	return out, ret.Error(1)
}

// Login provides a mock function with given fields: ctx, input
func (_m *MockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ret := _m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.LoginOutput)

	return out, ret.Error(1)
}

// GoogleLogin provides a mock function with given fields: ctx, input
func (_m *MockUserUsecase) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	ret := _m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.LoginOutput)

	return out, ret.Error(1)
}

// MockNoteUsecase is a mock type for the NoteUsecase type
type MockNoteUsecase struct {
	mock.Mock
}

// NewMockNoteUsecase registers the mock with t and asserts expectations on cleanup.
func NewMockNoteUsecase(t testingT) *MockNoteUsecase {
	m := &MockNoteUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// ListNotes provides a mock function with given fields: ctx, input
func (_m *MockNoteUsecase) ListNotes(ctx context.Context, input *usecase.ListNotesInput) (*usecase.ListNotesOutput, error) {
	ret := _m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.ListNotesOutput)

	return out, ret.Error(1)
}

// CreateNote provides a mock function with given fields: ctx, input
func (_m *MockNoteUsecase) CreateNote(ctx context.Context, input *usecase.CreateNoteInput) (*usecase.CreateNoteOutput, error) {
	ret := _m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.CreateNoteOutput)

	return out, ret.Error(1)
}

// DeleteNote provides a mock function with given fields: ctx, input
func (_m *MockNoteUsecase) DeleteNote(ctx context.Context, input *usecase.DeleteNoteInput) error {
	ret := _m.Called(ctx, input)

	return ret.Error(0)
}
