package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"commandapi/core"
	"commandapi/db"
	"commandapi/models"
	"commandapi/services"
	"commandapi/services/txmanager"
	"commandapi/testutils"
)

func setupCommandsTest(t *testing.T) (*CommandsService, *db.SQLCommandsRepository) {
	dbConn, schema := testutils.NewTestDB(t)
	commandsRepo := db.NewSQLCommandsRepository(dbConn, schema)
	service := NewCommandsService(commandsRepo, txmanager.NewTransactionManager(dbConn))
	return service, commandsRepo
}

// setupFailingCommitTest runs every unit of work but reports a failed save
func setupFailingCommitTest(t *testing.T) (*CommandsService, *db.SQLCommandsRepository) {
	dbConn, schema := testutils.NewTestDB(t)
	commandsRepo := db.NewSQLCommandsRepository(dbConn, schema)

	mockTxManager := &txmanager.MockTransactionManager{}
	mockTxManager.On("WithTransaction", mock.Anything, mock.Anything).
		Run(txmanager.RunInTransaction).
		Return(txmanager.ErrCommitFailed)
	t.Cleanup(func() { mockTxManager.AssertExpectations(t) })

	return NewCommandsService(commandsRepo, mockTxManager), commandsRepo
}

var _ services.CommandsService = (*CommandsService)(nil)
var _ services.CommandsService = (*MockCommandsService)(nil)

func TestCommandsService_GetAllCommands(t *testing.T) {
	t.Run("empty store returns empty list", func(t *testing.T) {
		service, _ := setupCommandsTest(t)

		commands, err := service.GetAllCommands(context.Background())
		require.NoError(t, err)
		assert.Empty(t, commands)
	})

	t.Run("returns N stored commands", func(t *testing.T) {
		service, repo := setupCommandsTest(t)
		for _, suffix := range []string{"one", "two", "three"} {
			testutils.CreateTestCommand(t, repo, suffix)
		}

		commands, err := service.GetAllCommands(context.Background())
		require.NoError(t, err)
		assert.Len(t, commands, 3)
	})
}

func TestCommandsService_GetCommandByID(t *testing.T) {
	service, repo := setupCommandsTest(t)
	existing := testutils.CreateTestCommand(t, repo, "lookup")

	t.Run("present", func(t *testing.T) {
		maybeCommand, err := service.GetCommandByID(context.Background(), existing.ID)
		require.NoError(t, err)
		require.True(t, maybeCommand.IsPresent())
		assert.Equal(t, existing, maybeCommand.MustGet())
	})

	t.Run("absent", func(t *testing.T) {
		maybeCommand, err := service.GetCommandByID(context.Background(), existing.ID+1)
		require.NoError(t, err)
		assert.True(t, maybeCommand.IsAbsent())
	})
}

func TestCommandsService_CreateCommand(t *testing.T) {
	t.Run("assigns identity and persists", func(t *testing.T) {
		service, repo := setupCommandsTest(t)
		input := &models.Command{
			ID:          99,
			HowTo:       "How to generate a migration",
			CommandLine: "dotnet ef migrations add <Name of Migration>",
			Platform:    ".Net Core EF",
		}

		created, err := service.CreateCommand(context.Background(), input)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(99), input.ID, "input must not be modified")

		maybeCommand, err := repo.GetCommandByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, maybeCommand.MustGet())
	})

	t.Run("commit failure is reported", func(t *testing.T) {
		service, _ := setupFailingCommitTest(t)

		created, err := service.CreateCommand(context.Background(), &models.Command{
			HowTo:       "How to list files",
			CommandLine: "ls",
			Platform:    "Linux",
		})
		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, txmanager.ErrCommitFailed)
		assert.False(t, core.IsNotFoundError(err))
	})
}

func TestCommandsService_UpdateCommand(t *testing.T) {
	t.Run("overwrites fields", func(t *testing.T) {
		service, repo := setupCommandsTest(t)
		existing := testutils.CreateTestCommand(t, repo, "update")

		updated := &models.Command{ID: existing.ID, HowTo: "How to list files", CommandLine: "dir", Platform: "Windows"}
		require.NoError(t, service.UpdateCommand(context.Background(), updated))

		maybeCommand, err := repo.GetCommandByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, maybeCommand.MustGet())
	})

	t.Run("absent identity is not found", func(t *testing.T) {
		service, _ := setupCommandsTest(t)

		err := service.UpdateCommand(context.Background(), &models.Command{ID: 404, HowTo: "x", CommandLine: "x", Platform: "x"})
		require.Error(t, err)
		assert.True(t, core.IsNotFoundError(err))
	})

	t.Run("commit failure is reported", func(t *testing.T) {
		service, repo := setupFailingCommitTest(t)
		existing := testutils.CreateTestCommand(t, repo, "commit")

		err := service.UpdateCommand(context.Background(), existing)
		require.Error(t, err)
		assert.ErrorIs(t, err, txmanager.ErrCommitFailed)
	})
}

func TestCommandsService_DeleteCommand(t *testing.T) {
	t.Run("removes the command", func(t *testing.T) {
		service, repo := setupCommandsTest(t)
		existing := testutils.CreateTestCommand(t, repo, "delete")

		require.NoError(t, service.DeleteCommand(context.Background(), existing.ID))

		maybeCommand, err := service.GetCommandByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.True(t, maybeCommand.IsAbsent(), "deleted command should no longer be retrievable")
	})

	t.Run("absent identity is not found", func(t *testing.T) {
		service, _ := setupCommandsTest(t)

		err := service.DeleteCommand(context.Background(), 404)
		require.Error(t, err)
		assert.True(t, core.IsNotFoundError(err))
	})

	t.Run("store errors are wrapped", func(t *testing.T) {
		dbConn, schema := testutils.NewTestDB(t)
		service := NewCommandsService(db.NewSQLCommandsRepository(dbConn, schema), txmanager.NewTransactionManager(dbConn))
		require.NoError(t, dbConn.Close())

		err := service.DeleteCommand(context.Background(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete command")
		assert.False(t, errors.Is(err, core.ErrNotFound))
	})
}
