package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Remote struct {
		BaseURL        string   `json:"base_url"`
		WatchURL       string   `json:"watch_url"`
		RequestTimeout Duration `json:"request_timeout"`
		BatchLimit     int      `json:"batch_limit"`
	} `json:"remote,omitempty"`

	Identity struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"identity,omitempty"`

	Local struct {
		DSN       string `json:"dsn"`
		KeyPrefix string `json:"key_prefix"`
	} `json:"local,omitempty"`

	Sync struct {
		Collections []string `json:"collections"`
		Throttle    Duration `json:"throttle"`
		JobInterval Duration `json:"job_interval"`
	} `json:"sync,omitempty"`

	Bootstrap struct {
		PollInterval Duration `json:"poll_interval"`
		MaxAttempts  int      `json:"max_attempts"`
	} `json:"bootstrap,omitempty"`

	Probe struct {
		Interval Duration `json:"interval"`
	} `json:"probe,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			WatchURL:       jsonCfg.Remote.WatchURL,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			BatchLimit:     jsonCfg.Remote.BatchLimit,
		},
		Identity: Identity{
			BaseURL:        jsonCfg.Identity.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Identity.RequestTimeout),
		},
		Local: Local{
			DSN:       jsonCfg.Local.DSN,
			KeyPrefix: jsonCfg.Local.KeyPrefix,
		},
		Sync: Sync{
			Collections: jsonCfg.Sync.Collections,
			Throttle:    time.Duration(jsonCfg.Sync.Throttle),
			JobInterval: time.Duration(jsonCfg.Sync.JobInterval),
		},
		Bootstrap: Bootstrap{
			PollInterval: time.Duration(jsonCfg.Bootstrap.PollInterval),
			MaxAttempts:  jsonCfg.Bootstrap.MaxAttempts,
		},
		Probe: Probe{
			Interval: time.Duration(jsonCfg.Probe.Interval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
