package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidArgument indicates a caller supplied an argument outside the accepted set
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownStrategy indicates the strategy name is not registered
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrSourceUnavailable indicates a token list source could not be fetched or parsed
	ErrSourceUnavailable = errors.New("source unavailable")
)

// FetchError represents an error during fetching
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any FetchError against ErrSourceUnavailable
func (e *FetchError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// InvalidArgumentError is returned when an argument is not one of the accepted values.
// Message is user facing and lists the accepted values.
type InvalidArgumentError struct {
	Argument string
	Value    string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(argument, value, message string) *InvalidArgumentError {
	return &InvalidArgumentError{
		Argument: argument,
		Value:    value,
		Message:  message,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StrategyError represents an error selecting or running a strategy
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError
func NewStrategyError(strategy string, err error) *StrategyError {
	return &StrategyError{
		Strategy: strategy,
		Err:      err,
	}
}
