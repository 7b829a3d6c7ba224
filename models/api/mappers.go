package api

import "commandapi/models"

// DomainCommandToAPICommand converts a domain Command model to an API CommandModel
func DomainCommandToAPICommand(domainCommand *models.Command) *CommandModel {
	if domainCommand == nil {
		return nil
	}

	return &CommandModel{
		ID:          domainCommand.ID,
		HowTo:       domainCommand.HowTo,
		CommandLine: domainCommand.CommandLine,
		Platform:    domainCommand.Platform,
	}
}

// DomainCommandsToAPICommands converts a slice of domain Commands to API CommandModels.
// The result is never nil so an empty store encodes as [].
func DomainCommandsToAPICommands(domainCommands []*models.Command) []*CommandModel {
	apiCommands := make([]*CommandModel, 0, len(domainCommands))
	for _, domainCommand := range domainCommands {
		apiCommands = append(apiCommands, DomainCommandToAPICommand(domainCommand))
	}
	return apiCommands
}

// APICreateCommandToDomainCommand builds a new domain Command from a create request.
// The identity is left for storage to assign.
func APICreateCommandToDomainCommand(createCommand *CreateCommandModel) *models.Command {
	return &models.Command{
		HowTo:       createCommand.HowTo,
		CommandLine: createCommand.CommandLine,
		Platform:    createCommand.Platform,
	}
}

// DomainCommandToAPIUpdateCommand projects a domain Command onto the update view
func DomainCommandToAPIUpdateCommand(domainCommand *models.Command) *UpdateCommandModel {
	return &UpdateCommandModel{
		HowTo:       domainCommand.HowTo,
		CommandLine: domainCommand.CommandLine,
		Platform:    domainCommand.Platform,
	}
}

// ApplyAPIUpdateCommandToDomainCommand overwrites every mutable field of domainCommand.
// The identity is never touched.
func ApplyAPIUpdateCommandToDomainCommand(updateCommand *UpdateCommandModel, domainCommand *models.Command) {
	domainCommand.HowTo = updateCommand.HowTo
	domainCommand.CommandLine = updateCommand.CommandLine
	domainCommand.Platform = updateCommand.Platform
}
