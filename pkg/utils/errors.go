package utils

import (
	"context"
	"errors"
	"net"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrConfigValidation  = errors.New("configuration validation error")
	ErrDependencyMissing = errors.New("required external dependency missing")
	ErrFetch             = errors.New("page fetch failed")    // Wraps renderer/navigation errors
	ErrParsing           = errors.New("parsing error")        // Wraps HTML/URL parsing errors
	ErrLookup            = errors.New("lookup service error") // Wraps transport/status errors
	ErrDecode            = errors.New("lookup response decode error")
	ErrRequestCreation   = errors.New("failed to create HTTP request")
	ErrFilesystem        = errors.New("filesystem error") // Wraps os errors
)

// CategorizeError maps an error to a predefined category string for logging/metrics.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	case errors.Is(err, ErrDependencyMissing):
		return "Dependency_Missing"
	case errors.Is(err, ErrFetch):
		lowerMsg := strings.ToLower(err.Error())
		if strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline exceeded") {
			return "Fetch_Timeout"
		}
		if strings.Contains(lowerMsg, "empty output") {
			return "Fetch_EmptyRender"
		}
		return "Fetch_Render"
	case errors.Is(err, ErrDecode):
		return "Lookup_Decode"
	case errors.Is(err, ErrLookup):
		errMsg := err.Error()
		// Keep the common status codes distinguishable in logs
		if strings.Contains(errMsg, " 404 ") {
			return "Lookup_HTTP_404"
		}
		if strings.Contains(errMsg, " 403 ") {
			return "Lookup_HTTP_403"
		}
		if strings.Contains(errMsg, "status ") {
			return "Lookup_HTTPStatus"
		}
		lowerMsg := strings.ToLower(errMsg)
		if strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline exceeded") {
			return "Lookup_Timeout"
		}
		return "Lookup_Transport"
	case errors.Is(err, ErrParsing):
		if strings.Contains(err.Error(), "URL") {
			return "Content_ParsingURL"
		}
		return "Content_ParsingHTML"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrFilesystem):
		return "Filesystem_Other"
	}

	// --- Fallback checks for common underlying error types/strings ---

	// Context errors
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	// Network errors (if not wrapped by custom sentinels)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Network_Timeout"
	}
	lowerErrMsg := strings.ToLower(err.Error())
	if strings.Contains(lowerErrMsg, "connection refused") {
		return "Network_ConnectionRefused"
	}
	if strings.Contains(lowerErrMsg, "no such host") {
		return "Network_DNSLookup"
	}

	return "Unknown"
}
