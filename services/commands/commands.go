package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"commandapi/db"
	"commandapi/models"
	"commandapi/services"
	"commandapi/utils"
)

type CommandsService struct {
	commandsRepo *db.SQLCommandsRepository
	txManager    services.TransactionManager
}

func NewCommandsService(repo *db.SQLCommandsRepository, txManager services.TransactionManager) *CommandsService {
	return &CommandsService{
		commandsRepo: repo,
		txManager:    txManager,
	}
}

func (s *CommandsService) GetAllCommands(ctx context.Context) ([]*models.Command, error) {
	log.Printf("📋 Starting to get all commands")

	commands, err := s.commandsRepo.GetAllCommands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get commands: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d commands", len(commands))
	return commands, nil
}

func (s *CommandsService) GetCommandByID(ctx context.Context, id int64) (mo.Option[*models.Command], error) {
	log.Printf("📋 Starting to get command by ID: %d", id)

	maybeCommand, err := s.commandsRepo.GetCommandByID(ctx, id)
	if err != nil {
		return mo.None[*models.Command](), fmt.Errorf("failed to get command: %w", err)
	}
	if !maybeCommand.IsPresent() {
		log.Printf("📋 Completed successfully - command not found")
		return mo.None[*models.Command](), nil
	}

	log.Printf("📋 Completed successfully - retrieved command with ID: %d", id)
	return maybeCommand, nil
}

// CreateCommand persists a new command and returns it with the id assigned by storage
func (s *CommandsService) CreateCommand(ctx context.Context, command *models.Command) (*models.Command, error) {
	log.Printf("📋 Starting to create command for platform: %s", command.Platform)

	created := *command
	created.ID = 0
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.commandsRepo.CreateCommand(ctx, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create command: %w", err)
	}

	utils.AssertInvariant(created.ID != 0, "created command must have a storage-assigned id")
	log.Printf("📋 Completed successfully - created command with ID: %d", created.ID)
	return &created, nil
}

// UpdateCommand overwrites the stored fields of command.ID with the given values
func (s *CommandsService) UpdateCommand(ctx context.Context, command *models.Command) error {
	log.Printf("📋 Starting to update command with ID: %d", command.ID)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.commandsRepo.UpdateCommand(ctx, command)
	})
	if err != nil {
		return fmt.Errorf("failed to update command: %w", err)
	}

	log.Printf("📋 Completed successfully - updated command with ID: %d", command.ID)
	return nil
}

func (s *CommandsService) DeleteCommand(ctx context.Context, id int64) error {
	log.Printf("📋 Starting to delete command with ID: %d", id)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.commandsRepo.DeleteCommand(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete command: %w", err)
	}

	log.Printf("📋 Completed successfully - deleted command with ID: %d", id)
	return nil
}
