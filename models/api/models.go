package api

// CommandModel represents the command data returned by the API
type CommandModel struct {
	ID          int64  `json:"id"`
	HowTo       string `json:"howTo"`
	CommandLine string `json:"commandLine"`
	Platform    string `json:"platform"`
}

// CreateCommandModel is the request body for creating a command
type CreateCommandModel struct {
	HowTo       string `json:"howTo"       validate:"notblank,max=250"`
	CommandLine string `json:"commandLine" validate:"notblank"`
	Platform    string `json:"platform"    validate:"notblank"`
}

// UpdateCommandModel is the request body for a full update and the
// document a JSON Patch is applied to for a partial update
type UpdateCommandModel struct {
	HowTo       string `json:"howTo"       validate:"notblank,max=250"`
	CommandLine string `json:"commandLine" validate:"notblank"`
	Platform    string `json:"platform"    validate:"notblank"`
}
