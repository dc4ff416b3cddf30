package models

// ConnectivityState reports network reachability of the remote backend.
// It is process-wide, mutated only by the connectivity monitor, and read by
// the sync engine before every remote operation.
type ConnectivityState int32

const (
	Offline ConnectivityState = iota
	Online
)

func (s ConnectivityState) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// ReadinessState reports whether the sync engine has completed bootstrap
// against the remote backend. Degraded is terminal for the process lifetime:
// once the bounded bootstrap wait is exhausted, every subsequent operation
// routes to the local store only.
type ReadinessState int32

const (
	Uninitialized ReadinessState = iota
	Ready
	Degraded
)

func (s ReadinessState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// ConnectionStatus is the diagnostic snapshot exposed to the UI collaborator.
// Persistent remote unavailability degrades the system to local-only
// silently; this value is how that degradation stays observable.
type ConnectionStatus struct {
	Online        bool `json:"online"`
	Ready         bool `json:"ready"`
	Authenticated bool `json:"authenticated"`
}
