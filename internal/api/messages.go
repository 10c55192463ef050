package api

import "net/http"

// statusMessages holds the canned user-facing text for well-known statuses.
var statusMessages = map[int]string{
	http.StatusBadRequest:            "Invalid request. Please check your input.",
	http.StatusUnauthorized:          "Your session has expired. Please log in again.",
	http.StatusForbidden:             "You do not have permission to perform this action.",
	http.StatusNotFound:              "The requested resource was not found.",
	http.StatusRequestTimeout:        MsgTimeout,
	http.StatusConflict:              "The resource already exists or was modified by someone else.",
	http.StatusRequestEntityTooLarge: "The uploaded file is too large.",
	http.StatusUnprocessableEntity:   "Some of the submitted data is invalid.",
	http.StatusTooManyRequests:       "Too many requests. Please slow down and try again.",
	http.StatusInternalServerError:   "The server encountered an error. Please try again later.",
	http.StatusBadGateway:            "The server is temporarily unreachable. Please try again later.",
	http.StatusServiceUnavailable:    "The service is temporarily unavailable. Please try again later.",
	http.StatusGatewayTimeout:        "The server took too long to respond. Please try again later.",
}

// StatusMessage returns the canned message for status. Unmapped statuses
// yield fallback, or MsgUnknown when fallback is empty.
func StatusMessage(status int, fallback string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}

	if fallback != "" {
		return fallback
	}

	return MsgUnknown
}
