package catalog

import "errors"

var (
	// ErrNoServers means neither the explicit list, SRV discovery nor the
	// fallback host produced a single catalog server.
	ErrNoServers = errors.New("no catalog servers available")

	// ErrSourceUnavailable wraps transport, status and parse failures of a catalog call.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	ErrBadStatus = errors.New("unexpected catalog status")
)
