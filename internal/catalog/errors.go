package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// statusError is a non-2xx reply from the catalog endpoint.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, describeStatus(e.Code, []byte(e.Body)))
}

// describeStatus extracts a human-readable message from an error reply.
func describeStatus(statusCode int, body []byte) string {
	var errResp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if len(errResp.Errors) > 0 && errResp.Errors[0].Message != "" {
			return errResp.Errors[0].Message
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "access denied by the catalog service"
	case http.StatusNotFound:
		return "catalog endpoint not found"
	case http.StatusTooManyRequests:
		return "rate limited, please wait"
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "catalog service temporarily unavailable"
	}

	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// friendlyError converts common network errors to user-facing text.
func friendlyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused (is the catalog service running?)"
	case strings.Contains(msg, "no such host"):
		return "host not found (check the catalog endpoint)"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "connection timed out"
	case strings.Contains(msg, "reset by peer"):
		return "connection reset by server"
	}
	return msg
}
