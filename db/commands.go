package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"commandapi/core"
	dbtx "commandapi/db/tx"
	"commandapi/models"
)

// SQLCommandsRepository stores commands in <schema>.commands on postgres or sqlite
type SQLCommandsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for commands table
var commandsColumns = []string{
	"id",
	"how_to",
	"command_line",
	"platform",
}

func NewSQLCommandsRepository(db *sqlx.DB, schema string) *SQLCommandsRepository {
	return &SQLCommandsRepository{db: db, schema: schema}
}

func (r *SQLCommandsRepository) GetAllCommands(ctx context.Context) ([]*models.Command, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(commandsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.commands
		ORDER BY id`, columnsStr, r.schema)

	commands := []*models.Command{}
	if err := db.SelectContext(ctx, &commands, query); err != nil {
		return nil, fmt.Errorf("failed to get commands: %w", err)
	}

	return commands, nil
}

func (r *SQLCommandsRepository) GetCommandByID(ctx context.Context, id int64) (mo.Option[*models.Command], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(commandsColumns, ", ")
	query := db.Rebind(fmt.Sprintf(`
		SELECT %s
		FROM %s.commands
		WHERE id = ?`, columnsStr, r.schema))

	var command models.Command
	if err := db.GetContext(ctx, &command, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Command](), nil
		}
		return mo.None[*models.Command](), fmt.Errorf("failed to get command: %w", err)
	}

	return mo.Some(&command), nil
}

// CreateCommand inserts command and writes the storage-assigned id back into it
func (r *SQLCommandsRepository) CreateCommand(ctx context.Context, command *models.Command) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{"how_to", "command_line", "platform"}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(commandsColumns, ", ")

	query := db.Rebind(fmt.Sprintf(`
		INSERT INTO %s.commands (%s)
		VALUES (?, ?, ?)
		RETURNING %s`, r.schema, columnsStr, returningStr))

	err := db.QueryRowxContext(ctx, query, command.HowTo, command.CommandLine, command.Platform).
		StructScan(command)
	if err != nil {
		return fmt.Errorf("failed to create command: %w", err)
	}

	return nil
}

// UpdateCommand overwrites every mutable column of the row identified by command.ID
func (r *SQLCommandsRepository) UpdateCommand(ctx context.Context, command *models.Command) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := db.Rebind(fmt.Sprintf(`
		UPDATE %s.commands
		SET how_to = ?, command_line = ?, platform = ?
		WHERE id = ?`, r.schema))

	result, err := db.ExecContext(ctx, query, command.HowTo, command.CommandLine, command.Platform, command.ID)
	if err != nil {
		return fmt.Errorf("failed to update command: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("command %d: %w", command.ID, core.ErrNotFound)
	}

	return nil
}

func (r *SQLCommandsRepository) DeleteCommand(ctx context.Context, id int64) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := db.Rebind(fmt.Sprintf(`
		DELETE FROM %s.commands
		WHERE id = ?`, r.schema))

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete command: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("command %d: %w", id, core.ErrNotFound)
	}

	return nil
}
