package models

// Document is one page handed to the auditor by the file scanner.
type Document struct {
	FilePath  string `json:"file_path"`
	Component string `json:"component"`
	Source    string `json:"-"`
}
