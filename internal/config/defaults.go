package config

import "time"

// defaultConfig is the lowest-priority configuration source. DSN and the
// backend base URL have no sensible defaults and stay empty; validation
// rejects them if no other source fills them in.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Remote: Remote{
			RequestTimeout: 10 * time.Second,
			BatchLimit:     500,
		},
		Identity: Identity{
			RequestTimeout: 10 * time.Second,
		},
		Local: Local{
			KeyPrefix: "teamsync/",
		},
		Sync: Sync{
			Throttle:    150 * time.Millisecond,
			JobInterval: 5 * time.Minute,
		},
		Bootstrap: Bootstrap{
			PollInterval: 100 * time.Millisecond,
			MaxAttempts:  50,
		},
		Probe: Probe{
			Interval: 5 * time.Second,
		},
	}
}
