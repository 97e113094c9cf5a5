package config

import "os"

// EnvAPIURL overrides Config.APIBaseURL.
const EnvAPIURL = "API_URL"

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
}
