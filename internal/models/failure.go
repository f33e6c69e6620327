package models

import "fmt"

type FailureKind int

const (
	// TransportFailure is a non-success status or a failed round trip.
	TransportFailure FailureKind = iota + 1
	// ApplicationFailure is a success status whose payload reports an error.
	ApplicationFailure
	// DataIncompleteFailure means required fields were missing before a store write.
	DataIncompleteFailure
)

func (k FailureKind) String() string {
	switch k {
	case TransportFailure:
		return "transport_failure"
	case ApplicationFailure:
		return "application_failure"
	case DataIncompleteFailure:
		return "data_incomplete"
	default:
		return "unknown"
	}
}

// Failure is the single error kind surfaced by the metadata and popularity clients.
type Failure struct {
	Kind       FailureKind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", f.Op, f.Message, f.StatusCode)
	}
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
