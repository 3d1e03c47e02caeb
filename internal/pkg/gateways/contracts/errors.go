package contracts

import "fmt"

// ProviderError wraps a failed call to a payment provider. Network errors,
// timeouts and non-2xx responses all land here so callers can tell them
// apart from "no error, empty result".
type ProviderError struct {
	Gateway    string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider request failed: %v", e.Gateway, e.Err)
	}
	return fmt.Sprintf("%s provider request failed: status=%d code=%s message=%s",
		e.Gateway, e.StatusCode, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
