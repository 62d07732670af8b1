package model

const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// YAMLProblem is a lint finding. Line and Column count from 1 within the linted payload.
type YAMLProblem struct {
	Line    int
	Column  int
	Level   string
	Rule    string
	Message string
}
