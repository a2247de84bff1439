package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "server.storage")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// repositoryRegex matches owner/name
var repositoryRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidStorages returns the list of valid server storage backends
func ValidStorages() []string {
	return []string{StorageJSON, StorageSQLite, StorageMemory}
}

// Validate checks the Config for invalid values and returns all validation errors found.
// The PR selection is only required when commands run locally.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if !c.IsRemote() {
		errors = append(errors, c.ValidateSelection()...)
	}
	errors = append(errors, c.validateGeneral()...)
	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateClient()...)

	return errors
}

// ValidateSelection checks the author and repositories a session needs to fetch anything
func (c *Config) ValidateSelection() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Author) == "" {
		errors = append(errors, ValidationError{
			Field:   "author",
			Value:   c.Author,
			Message: "is required",
		})
	}

	if len(c.Repositories) == 0 {
		errors = append(errors, ValidationError{
			Field:   "repositories",
			Value:   c.Repositories,
			Message: "must list at least one owner/name repository",
		})
	}
	for i, repo := range c.Repositories {
		if !repositoryRegex.MatchString(repo) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("repositories[%d]", i),
				Value:   repo,
				Message: "must be in owner/name form",
			})
		}
	}

	return errors
}

func (c *Config) validateGeneral() []ValidationError {
	var errors []ValidationError

	if c.TTL <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ttl",
			Value:   c.TTL,
			Message: "must be positive",
		})
	}

	if !slices.Contains(ValidLogLevels(), c.LogLevel) {
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if !c.IsRemote() && c.StateFile == "" {
		errors = append(errors, ValidationError{
			Field:   "state_file",
			Value:   c.StateFile,
			Message: "is required",
		})
	}

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "is required",
		})
	}

	if !slices.Contains(ValidStorages(), c.Server.Storage) {
		errors = append(errors, ValidationError{
			Field:   "server.storage",
			Value:   c.Server.Storage,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidStorages(), ", ")),
		})
	}

	if c.Server.Storage == StorageSQLite && c.Server.DBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "server.db_path",
			Value:   c.Server.DBPath,
			Message: "is required for sqlite storage",
		})
	}

	return errors
}

func (c *Config) validateClient() []ValidationError {
	var errors []ValidationError

	if c.Client.ServerURL != "" {
		u, err := url.Parse(c.Client.ServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "client.server_url",
				Value:   c.Client.ServerURL,
				Message: "must be an http(s) URL",
			})
		}
	}

	if strings.TrimSpace(c.Client.Session) == "" || strings.Contains(c.Client.Session, "/") {
		errors = append(errors, ValidationError{
			Field:   "client.session",
			Value:   c.Client.Session,
			Message: "must be a non-empty name without '/'",
		})
	}

	if c.Client.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "client.timeout",
			Value:   c.Client.Timeout,
			Message: "must be positive",
		})
	}

	return errors
}
