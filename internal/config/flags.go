package config

import (
	"flag"
	"strings"
	"time"
)

// CollectionList holds the comma-separated collection set passed on the
// command line. It implements the flag.Value interface.
type CollectionList []string

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-remote-url backend base URL
//	-watch-url websocket base URL for live subscriptions
//	-request-timeout outbound request timeout (e.g., "10s")
//	-batch-limit backend per-request record ceiling
//	-identity-url identity provider base URL
//	-identity-timeout identity request timeout
//	-d local cache DSN
//	-key-prefix local cache key prefix
//	-collections comma-separated collection names
//	-throttle delay between collections during reconciliation
//	-sync-interval background reconciliation period
//	-poll-interval bootstrap probe interval
//	-max-attempts bootstrap probe budget
//	-probe-interval steady-state connectivity probe period
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var remoteURL string
	var watchURL string
	var requestTimeout time.Duration
	var batchLimit int
	var identityURL string
	var identityTimeout time.Duration
	var localDSN string
	var keyPrefix string
	var collections CollectionList
	var throttle time.Duration
	var syncInterval time.Duration
	var pollInterval time.Duration
	var maxAttempts int
	var probeInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&remoteURL, "remote-url", "", "Backend base URL")
	flag.StringVar(&watchURL, "watch-url", "", "WebSocket base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	flag.IntVar(&batchLimit, "batch-limit", 0, "Backend batch record limit")
	flag.StringVar(&identityURL, "identity-url", "", "Identity provider base URL")
	flag.DurationVar(&identityTimeout, "identity-timeout", 0, "Identity request timeout")
	flag.StringVar(&localDSN, "d", "", "Local cache DSN")
	flag.StringVar(&keyPrefix, "key-prefix", "", "Local cache key prefix")
	flag.Var(&collections, "collections", "Comma-separated collection names")
	flag.DurationVar(&throttle, "throttle", 0, "Reconciliation throttle (e.g., 150ms)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background reconciliation period")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Bootstrap probe interval")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Bootstrap probe budget")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe period")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        remoteURL,
			WatchURL:       watchURL,
			RequestTimeout: requestTimeout,
			BatchLimit:     batchLimit,
		},
		Identity: Identity{
			BaseURL:        identityURL,
			RequestTimeout: identityTimeout,
		},
		Local: Local{
			DSN:       localDSN,
			KeyPrefix: keyPrefix,
		},
		Sync: Sync{
			Collections: collections,
			Throttle:    throttle,
			JobInterval: syncInterval,
		},
		Bootstrap: Bootstrap{
			PollInterval: pollInterval,
			MaxAttempts:  maxAttempts,
		},
		Probe: Probe{
			Interval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the canonical comma-separated form of the list.
func (c *CollectionList) String() string {
	return strings.Join(*c, ",")
}

// Set splits the input on commas, trims surrounding whitespace, and drops
// empty segments.
func (c *CollectionList) Set(s string) error {
	*c = (*c)[:0]
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		*c = append(*c, part)
	}
	return nil
}
