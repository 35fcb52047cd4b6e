package repository

import "net/http"

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
// Returning an error simulates a network-level failure.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
