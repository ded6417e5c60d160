package commands

import (
	"fmt"
	"strconv"

	"github.com/DeprecatedLuar/avosig/internal/auth"
	"github.com/DeprecatedLuar/avosig/internal/ui"
)

// Prompt labels, in the order they are asked
const (
	PromptEmail        = "Email of an Avocado account: "
	PromptPassword     = "Password: "
	PromptDeveloperID  = "Developer ID: "
	PromptDeveloperKey = "Developer key: "
)

// InvalidInputError is a developer id that is not a non-negative integer.
// It aborts the run instead of collapsing into the failure message.
type InvalidInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected a non-negative integer", e.Field, e.Value)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// CollectCredentials asks for email, password (hidden), developer id and developer key.
func CollectCredentials(p ui.Prompter) (auth.Credentials, error) {
	var creds auth.Credentials
	var err error

	if creds.Email, err = p.Prompt(PromptEmail); err != nil {
		return auth.Credentials{}, fmt.Errorf("failed to read email: %w", err)
	}
	if creds.Password, err = p.PromptSecret(PromptPassword); err != nil {
		return auth.Credentials{}, fmt.Errorf("failed to read password: %w", err)
	}

	rawID, err := p.Prompt(PromptDeveloperID)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("failed to read developer id: %w", err)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id < 0 {
		return auth.Credentials{}, &InvalidInputError{Field: "developer id", Value: rawID, Err: err}
	}
	creds.DeveloperID = id

	// Passed through untouched
	if creds.DeveloperKey, err = p.Prompt(PromptDeveloperKey); err != nil {
		return auth.Credentials{}, fmt.Errorf("failed to read developer key: %w", err)
	}

	return creds, nil
}
