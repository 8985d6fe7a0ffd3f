package maps

import "errors"

// Classified directions failures. Raw provider status codes never leave this
// package; callers show the error text to the user as-is.
var (
	ErrNoRoute          = errors.New("no route could be found between these stops")
	ErrAddressNotFound  = errors.New("one or more addresses could not be found")
	ErrInvalidRequest   = errors.New("the route request was invalid")
	ErrRateLimited      = errors.New("too many route requests, try again shortly")
	ErrPermissionDenied = errors.New("the mapping service rejected the request")
	ErrServer           = errors.New("the mapping service had a temporary problem")
	ErrUnknown          = errors.New("route optimization failed for an unknown reason")
)

// classifyStatus maps a directions API status code onto the small fixed set
// of user-facing errors.
func classifyStatus(status string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return ErrNoRoute
	case "NOT_FOUND":
		return ErrAddressNotFound
	case "INVALID_REQUEST", "MAX_WAYPOINTS_EXCEEDED", "MAX_ROUTE_LENGTH_EXCEEDED":
		return ErrInvalidRequest
	case "OVER_DAILY_LIMIT", "OVER_QUERY_LIMIT":
		return ErrRateLimited
	case "REQUEST_DENIED":
		return ErrPermissionDenied
	case "UNKNOWN_ERROR":
		return ErrServer
	default:
		return ErrUnknown
	}
}
