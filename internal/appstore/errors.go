package appstore

import (
	"fmt"
	"net/http"
)

// Error codes documented for the order lookup endpoint.
const (
	ErrorCodeGeneralBadRequest = 4000000
	ErrorCodeInvalidOrderID    = 4000006
	ErrorCodeOrderNotFound     = 4040010
	ErrorCodeRateLimitExceeded = 4290000
	ErrorCodeGeneralInternal   = 5000000
)

// APIError is returned for every non-2xx response of the App Store Server
// API. ErrorCode and ErrorMessage are empty when the body was not the
// documented error JSON.
type APIError struct {
	HTTPStatus   int    `json:"-"`
	ErrorCode    int64  `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (e *APIError) Error() string {
	status := fmt.Sprintf("%d %s", e.HTTPStatus, http.StatusText(e.HTTPStatus))
	switch {
	case e.ErrorCode != 0 && e.ErrorMessage != "":
		return fmt.Sprintf("App Store API error (%s): %d %s", status, e.ErrorCode, e.ErrorMessage)
	case e.ErrorMessage != "":
		return fmt.Sprintf("App Store API error (%s): %s", status, e.ErrorMessage)
	default:
		return fmt.Sprintf("App Store API error (%s)", status)
	}
}
