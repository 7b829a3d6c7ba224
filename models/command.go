package models

// Command is a stored how-to: the command line to run and the platform it applies to.
// ID is assigned by storage on insert and never changes afterwards.
type Command struct {
	ID          int64  `json:"id"           db:"id"`
	HowTo       string `json:"how_to"       db:"how_to"`
	CommandLine string `json:"command_line" db:"command_line"`
	Platform    string `json:"platform"     db:"platform"`
}
