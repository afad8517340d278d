package repository

import (
	"context"

	"notekeeper/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNoteRepository is a mock type for the NoteRepository type
type MockNoteRepository struct {
	mock.Mock
}

// NewMockNoteRepository registers the mock with t and asserts expectations on cleanup.
func NewMockNoteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNoteRepository {
	m := &MockNoteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Create provides a mock function with given fields: ctx, note
func (_m *MockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	ret := _m.Called(ctx, note)
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Note) error); ok {
		return rf(ctx, note)
	}

	return ret.Error(0)
}

// FindByOwner provides a mock function with given fields: ctx, userID
func (_m *MockNoteRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Note, error) {
	ret := _m.Called(ctx, userID)
	notes, _ := ret.Get(0).([]*entity.Note)

	return notes, ret.Error(1)
}

// DeleteOwned provides a mock function with given fields: ctx, userID, noteID
func (_m *MockNoteRepository) DeleteOwned(ctx context.Context, userID, noteID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, userID, noteID)

	return ret.Bool(0), ret.Error(1)
}
