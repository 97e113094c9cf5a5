package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/linkedin-clone/internal/flagx"
	"github.com/dmitrijs2005/linkedin-clone/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings like "30s" or integer nanoseconds. Absent fields keep their
// previous value.
type JsonConfig struct {
	APIBaseURL           string          `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	DatabasePath         string          `json:"database_path"`
	NotificationTTL      *timex.Duration `json:"notification_ttl"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
	Debug                *bool           `json:"debug"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.NotificationTTL != nil {
		cfg.NotificationTTL = jc.NotificationTTL.Duration
	}
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
