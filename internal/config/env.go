package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// source resolves keys from the process environment (after an optional .env
// file) and, when CONFIG_FILE is set, from that file. Environment wins.
type source struct {
	v *viper.Viper
}

func newSource() (source, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return source{}, err
	}

	v := viper.New()
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString(envConfigFile)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return source{}, err
		}
	}
	return source{v: v}, nil
}

func (s source) raw(key string) string {
	return strings.TrimSpace(s.v.GetString(key))
}

func (s source) stringOrDefault(key, defaultValue string) string {
	val := s.raw(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func (s source) durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := s.raw(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func (s source) intOrDefault(key string, defaultValue int) int {
	raw := s.raw(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func (s source) boolOrDefault(key string, defaultValue bool) bool {
	raw := s.raw(key)
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}
