package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock implementation of gitrepo.Repository
type Repository struct {
	mock.Mock
}

func (m *Repository) Pull(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Repository) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) WriteFile(name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *Repository) RemoveFile(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *Repository) Exists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *Repository) List(ext string) ([]string, error) {
	args := m.Called(ext)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) CommitAndPushIfDirty(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}
