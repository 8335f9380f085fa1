package upstream

import "fmt"

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. Surfaced inline, never retried.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return "upstream: " + e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthorizationError means the access token was rejected and could not be
// recovered with a single refresh. The session has already been cleared by the
// time callers see this.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "upstream: authorization failed: " + e.Reason
}

// UpstreamError is a non-2xx business response. Message carries the decoded
// "error" field when the backend supplied one.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream: status %d", e.Status)
}
