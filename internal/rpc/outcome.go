package rpc

// Status classifies how a ledger call ended. The set is closed: every
// continuation switches over all three values.
type Status int

const (
	// StatusSuccess means the server answered success:true with a usable payload
	StatusSuccess Status = iota
	// StatusReported means the server answered success:false
	StatusReported
	// StatusNetwork means the request did not complete or the body was unusable
	StatusNetwork
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusReported:
		return "reported"
	case StatusNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result a ledger call hands to its continuation
type Outcome[T any] struct {
	Status Status
	// Value is set on StatusSuccess
	Value T
	// Message is the server-provided text, set on StatusReported (may be empty)
	Message string
	// Err is the cause, set on StatusNetwork
	Err error
}

// Success wraps a payload
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{Status: StatusSuccess, Value: v}
}

// Reported wraps a server-side refusal
func Reported[T any](message string) Outcome[T] {
	return Outcome[T]{Status: StatusReported, Message: message}
}

// Network wraps a transport or decoding failure
func Network[T any](err error) Outcome[T] {
	return Outcome[T]{Status: StatusNetwork, Err: err}
}
