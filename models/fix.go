package models

// FixAttempt is one ledger entry: an issue and what happened when fixing it.
type FixAttempt struct {
	Issue   ValidationIssue `json:"issue"`
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
}

// FixResult is the outcome of fixing one document.
type FixResult struct {
	FilePath string            `json:"file_path" yaml:"file_path"`
	Fixed    []ValidationIssue `json:"fixed" yaml:"fixed"`
	Unfixed  []ValidationIssue `json:"unfixed" yaml:"unfixed"`
	Content  string            `json:"-" yaml:"-"`
	Success  bool              `json:"success" yaml:"success"`
}
