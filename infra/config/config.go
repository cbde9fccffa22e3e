package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Path is the default directory of the config files.
var Path = "infra/config"

// File returns the location of the config file for the given key.
// A key that already points to a json file is returned as is.
func File(dir, key string) string {
	if strings.HasSuffix(key, ".json") {
		return key
	}
	return filepath.Join(dir, fmt.Sprintf("%s.json", key))
}

// Load loads the config for the given key from the given directory into v.
func Load(dir, key string, v interface{}) ([]byte, error) {
	file := File(dir, key)
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not load config for %s: %w", key, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}

	log.Info().Str("key", key).Str("file", file).Msg("loaded config")

	return b, nil
}

// MustLoad loads the config for the given key from the default path
func MustLoad(key string, v interface{}) []byte {
	b, err := Load(Path, key, v)
	if err != nil {
		panic(err.Error())
	}
	return b
}
