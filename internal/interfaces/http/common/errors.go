package common

import (
	"context"
	"errors"
	"net/http"
)

// ErrorInfo describes how an error is reported. Code is exposed to callers;
// Kind labels logs and metrics.
type ErrorInfo struct {
	Status  int
	Message string
	Code    string
	Kind    string
}

// ErrorMapping binds a sentinel to its report.
type ErrorMapping struct {
	Err  error
	Info ErrorInfo
}

// ErrorMapper maps errors to responses with errors.Is, first match wins.
type ErrorMapper struct {
	mappings []ErrorMapping
	fallback ErrorInfo
}

// NewErrorMapper creates a mapper whose fallback is a generic 500.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		fallback: ErrorInfo{Status: http.StatusInternalServerError, Message: "internal server error", Kind: "internal"},
	}
}

// WithMapping appends a mapping. Register wrapped sentinels before the ones they wrap.
func (m *ErrorMapper) WithMapping(err error, info ErrorInfo) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Err: err, Info: info})
	return m
}

// WithDefault sets the report for unmatched errors.
func (m *ErrorMapper) WithDefault(info ErrorInfo) *ErrorMapper {
	m.fallback = info
	return m
}

// Map converts err to its report. Context errors are checked first.
func (m *ErrorMapper) Map(err error) ErrorInfo {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{Status: http.StatusGatewayTimeout, Message: "Request timed out.", Kind: "timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return ErrorInfo{Status: http.StatusServiceUnavailable, Message: "Request cancelled.", Kind: "canceled"}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Err) {
			return mapping.Info
		}
	}
	return m.fallback
}
