// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - CLI error types and exit code mapping.
//
// ERROR HANDLING: Errors must not be silently ignored
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
)

// Exit codes returned to the shell.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitNetworkError = 4
	ExitStorageError = 5
	ExitNotFound     = 6
	ExitCancelled    = 130 // Conventional SIGINT exit code
)

// CommandError is an error with an explicit exit code.
type CommandError struct {
	Code    int
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError with the given code.
func NewCommandError(code int, message string, err error) *CommandError {
	return &CommandError{Code: code, Message: message, Err: err}
}

// ValidationError indicates bad user input (flags, arguments, config values).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates a missing conversation, model, or file.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// GetExitCode maps an error to a shell exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ExitUsageError
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFound
	}

	// Cancellation wins over the network classification: a NetworkError
	// wrapping context.Canceled is an interrupt, not a transport fault.
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return ExitNetworkError
	}

	var cfgErrs config.ValidateErrors
	if errors.As(err, &cfgErrs) {
		return ExitConfigError
	}

	// Fall back to message-content categorization for wrapped errors
	// that lost their type on the way up.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "config"):
		return ExitConfigError
	case strings.Contains(msg, "connection") || strings.Contains(msg, "network"):
		return ExitNetworkError
	case strings.Contains(msg, "not found"):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// DisplayError prints an error to stderr with shared styling.
func DisplayError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), err)
}

// HandleErrorAndExit prints the error and exits with the mapped code.
func HandleErrorAndExit(err error) {
	if err == nil {
		return
	}
	DisplayError(err)
	os.Exit(GetExitCode(err))
}
