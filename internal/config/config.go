// Package config loads the host-facing JSONC configuration used by the
// cmd/ binaries. The core engine package never reads files itself — it
// takes the capped length as a constructor argument.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds the settings a CLI host reads before building an index.
type Config struct {
	// CappedLength is L, the positional index's offset cap.
	CappedLength int `json:"capped_length,omitempty"`
	// CorpusPath names a newline-delimited or JSON-array corpus file. The
	// cmd/ hosts take the corpus from their --corpus flag and do not read
	// this field.
	CorpusPath string `json:"corpus_path,omitempty"`
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `json:"log_level,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		CappedLength: 256,
		LogLevel:     "info",
	}
}

// Load reads path, strips JSONC comments and trailing commas via hujson,
// and unmarshals over Default(). A missing file is not an error: Load
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid JSONC in %s: %w", path, err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}
