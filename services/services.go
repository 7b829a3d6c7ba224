package services

import (
	"context"

	"github.com/samber/mo"

	"commandapi/models"
)

// CommandsService defines the interface for command-related operations.
// Mutations are committed before they return; a commit failure is returned as an error.
type CommandsService interface {
	GetAllCommands(ctx context.Context) ([]*models.Command, error)
	GetCommandByID(ctx context.Context, id int64) (mo.Option[*models.Command], error)
	CreateCommand(ctx context.Context, command *models.Command) (*models.Command, error)
	UpdateCommand(ctx context.Context, command *models.Command) error
	DeleteCommand(ctx context.Context, id int64) error
}

// TransactionManager runs a unit of work and commits it; a failed commit is returned as an error
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
