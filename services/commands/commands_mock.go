package commands

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"commandapi/models"
)

// MockCommandsService is a mock implementation of services.CommandsService
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) GetAllCommands(ctx context.Context) ([]*models.Command, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandsService) GetCommandByID(ctx context.Context, id int64) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockCommandsService) CreateCommand(ctx context.Context, command *models.Command) (*models.Command, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Command), args.Error(1)
}

func (m *MockCommandsService) UpdateCommand(ctx context.Context, command *models.Command) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

func (m *MockCommandsService) DeleteCommand(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
