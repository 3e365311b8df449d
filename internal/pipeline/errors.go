package pipeline

import "errors"

// Sentinel errors classifying pipeline failures. Stages wrap collaborator
// errors with one of these so downstream code can classify with errors.Is.
var (
	// ErrParse marks a malformed raw item rejected at normalization.
	ErrParse = errors.New("parse error")

	// ErrNetwork marks a quote-tick failure or a mention-stream disconnect.
	ErrNetwork = errors.New("network error")

	// ErrPersistence marks a failed cache write or fallback read.
	ErrPersistence = errors.New("persistence error")
)

// ErrorKind is the coarse classification surfaced to the consumer.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindParse
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// KindOf classifies an error. Unrecognized errors count as network failures:
// everything a branch can raise that is not a local parse or store problem
// came from the wire.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindNetwork
	}
}
