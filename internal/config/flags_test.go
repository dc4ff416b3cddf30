package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollectionList_String tests the String method of CollectionList
func TestCollectionList_String(t *testing.T) {
	tests := []struct {
		name     string
		list     CollectionList
		expected string
	}{
		{
			name:     "empty list",
			list:     CollectionList{},
			expected: "",
		},
		{
			name:     "single collection",
			list:     CollectionList{"users"},
			expected: "users",
		},
		{
			name:     "multiple collections",
			list:     CollectionList{"users", "events", "absences"},
			expected: "users,events,absences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.list.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestCollectionList_Set tests the Set method of CollectionList
func TestCollectionList_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CollectionList
	}{
		{
			name:     "single collection",
			input:    "users",
			expected: CollectionList{"users"},
		},
		{
			name:     "multiple collections",
			input:    "users,events,absences",
			expected: CollectionList{"users", "events", "absences"},
		},
		{
			name:     "whitespace trimmed",
			input:    " users , events ",
			expected: CollectionList{"users", "events"},
		},
		{
			name:     "empty segments dropped",
			input:    "users,,events,",
			expected: CollectionList{"users", "events"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: CollectionList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &CollectionList{}
			err := list.Set(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *list)
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-remote-url", "https://sync.example.com",
				"-watch-url", "wss://sync.example.com",
				"-request-timeout", "10s",
				"-batch-limit", "500",
				"-identity-url", "https://auth.example.com",
				"-identity-timeout", "5s",
				"-d", "/var/lib/teamsync/cache.db",
				"-key-prefix", "acme/",
				"-collections", "users,events",
				"-throttle", "150ms",
				"-sync-interval", "5m",
				"-poll-interval", "100ms",
				"-max-attempts", "50",
				"-probe-interval", "5s",
				"-c", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "https://sync.example.com", cfg.Remote.BaseURL)
				assert.Equal(t, "wss://sync.example.com", cfg.Remote.WatchURL)
				assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
				assert.Equal(t, 500, cfg.Remote.BatchLimit)
				assert.Equal(t, "https://auth.example.com", cfg.Identity.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.Identity.RequestTimeout)
				assert.Equal(t, "/var/lib/teamsync/cache.db", cfg.Local.DSN)
				assert.Equal(t, "acme/", cfg.Local.KeyPrefix)
				assert.Equal(t, []string{"users", "events"}, cfg.Sync.Collections)
				assert.Equal(t, 150*time.Millisecond, cfg.Sync.Throttle)
				assert.Equal(t, 5*time.Minute, cfg.Sync.JobInterval)
				assert.Equal(t, 100*time.Millisecond, cfg.Bootstrap.PollInterval)
				assert.Equal(t, 50, cfg.Bootstrap.MaxAttempts)
				assert.Equal(t, 5*time.Second, cfg.Probe.Interval)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-remote-url", "https://sync.example.com",
				"-d", "/tmp/cache.db",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "https://sync.example.com", cfg.Remote.BaseURL)
				assert.Equal(t, "/tmp/cache.db", cfg.Local.DSN)
				assert.Empty(t, cfg.Remote.WatchURL)
				assert.Empty(t, cfg.Sync.Collections)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Remote.BaseURL)
				assert.Empty(t, cfg.Local.DSN)
				assert.Empty(t, cfg.Sync.Collections)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Zero(t, cfg.Remote.RequestTimeout)
				assert.Zero(t, cfg.Bootstrap.MaxAttempts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Set os.Args to simulate command line arguments
			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}
