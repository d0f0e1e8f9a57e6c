package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Discovery errors
	ErrSectorfileNotFound ErrorCode = "SECTORFILE_NOT_FOUND"
	ErrRepoNotFound       ErrorCode = "REPO_NOT_FOUND"

	// Manifest errors
	ErrManifestLoad     ErrorCode = "MANIFEST_LOAD"
	ErrManifestConflict ErrorCode = "MANIFEST_CONFLICT"

	// Link errors
	ErrInvalidSource         ErrorCode = "INVALID_SOURCE"
	ErrRequiredSourceMissing ErrorCode = "REQUIRED_SOURCE_MISSING"
	ErrDestinationOccupied   ErrorCode = "DESTINATION_OCCUPIED"
	ErrUnsafeReplace         ErrorCode = "UNSAFE_REPLACE"
	ErrLinkFailed            ErrorCode = "LINK_FAILED"

	// Filesystem errors
	ErrFileAccess  ErrorCode = "FILE_ACCESS"
	ErrFileCopy    ErrorCode = "FILE_COPY"
	ErrDirCreate   ErrorCode = "DIR_CREATE"
	ErrReportWrite ErrorCode = "REPORT_WRITE"
)

// SectorlinkError represents a structured error with code and details
type SectorlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SectorlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SectorlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SectorlinkError) Is(target error) bool {
	var targetErr *SectorlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SectorlinkError with the given code and message
func New(code ErrorCode, message string) *SectorlinkError {
	return &SectorlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SectorlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SectorlinkError {
	return &SectorlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SectorlinkError
func Wrap(err error, code ErrorCode, message string) *SectorlinkError {
	if err == nil {
		return nil
	}
	return &SectorlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SectorlinkError {
	if err == nil {
		return nil
	}
	return &SectorlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SectorlinkError) WithDetail(key string, value interface{}) *SectorlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var linkErr *SectorlinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SectorlinkError
func GetErrorCode(err error) ErrorCode {
	var linkErr *SectorlinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SectorlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var linkErr *SectorlinkError
	if errors.As(err, &linkErr) {
		return linkErr.Details
	}
	return nil
}
