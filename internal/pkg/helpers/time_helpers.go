package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration value from configuration. An invalid
// value logs a warning and falls back to the given default rather than
// keeping the server from starting.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration in configuration, using default")
		return fallback
	}
	return duration
}
