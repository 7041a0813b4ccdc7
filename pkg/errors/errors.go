package errors

import "fmt"

// Error codes
const (
	CodeDirectoryError = "DIRECTORY_ERROR"
	CodeNetwork        = "NETWORK_ERROR"
	CodeParsing        = "PARSING_ERROR"
	CodeRecord         = "RECORD_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeCache          = "CACHE_ERROR"
)

type DirectoryError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *DirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DirectoryError) Unwrap() error {
	return e.Cause
}

func NewDirectoryError(message, code string, statusCode int, context map[string]any) *DirectoryError {
	return &DirectoryError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *DirectoryError) WithCause(cause error) *DirectoryError {
	e.Cause = cause
	return e
}

// NetworkError reports a dataset fetch that did not produce a body:
// transport failure, timeout or a non-2xx status.
type NetworkError struct {
	*DirectoryError
	Source string
}

func NewNetworkError(message, source string, statusCode int, cause error) *NetworkError {
	return &NetworkError{
		DirectoryError: &DirectoryError{
			Message:    message,
			Code:       CodeNetwork,
			StatusCode: statusCode,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

// ParsingError reports a body that is not a usable dataset document.
type ParsingError struct {
	*DirectoryError
	Source string
}

func NewParsingError(message, source string, cause error) *ParsingError {
	return &ParsingError{
		DirectoryError: &DirectoryError{
			Message:    message,
			Code:       CodeParsing,
			StatusCode: 422,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

// RecordError reports one dataset entry that could not be normalized.
type RecordError struct {
	*DirectoryError
	Index int
}

func NewRecordError(message string, index int, cause error) *RecordError {
	return &RecordError{
		DirectoryError: &DirectoryError{
			Message:    message,
			Code:       CodeRecord,
			StatusCode: 422,
			Context: map[string]any{
				"index": index,
			},
			Cause: cause,
		},
		Index: index,
	}
}

type ValidationError struct {
	*DirectoryError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		DirectoryError: &DirectoryError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*DirectoryError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		DirectoryError: &DirectoryError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
