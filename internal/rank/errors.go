package rank

import (
	"errors"
	"fmt"
)

// ErrFetch is matched by every *FetchError via errors.Is
var ErrFetch = errors.New("rank fetch failed")

// Reason classifies why a fetch failed. All reasons share one retry path.
type Reason string

const (
	ReasonNetwork   Reason = "network"
	ReasonMarker    Reason = "marker not found"
	ReasonRowStart  Reason = "row start not found"
	ReasonFieldEnd  Reason = "field end not found"
	ReasonNotNumber Reason = "field is not a number"
	ReasonPersist   Reason = "persist"
)

// FetchError is the single error kind produced by the fetcher.
type FetchError struct {
	Source string
	Reason Reason
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetch) match any FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
