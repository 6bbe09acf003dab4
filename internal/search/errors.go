package search

import "fmt"

// ErrorKind classifies provider failures for fallback decisions.
type ErrorKind int

const (
	// KindAuth covers a missing or rejected credential. Never retryable.
	KindAuth ErrorKind = iota + 1
	// KindQuota covers rate limiting and exhausted quota.
	KindQuota
	// KindTransport covers network failures and unexpected HTTP statuses.
	KindTransport
	// KindDecode covers an unreadable provider response.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// ProviderError is a classified failure from one provider.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NoResultsError reports a result page that was fetched successfully but
// yielded no usable profile links. RawBody carries the exact page for
// diagnostic capture; it is kept distinct from a hard fetch failure so the
// caller can tell "blocked or relayouted" from "network down".
type NoResultsError struct {
	Provider string
	RawBody  []byte
}

func (e *NoResultsError) Error() string {
	return e.Provider + ": page parsed to zero profile results"
}
