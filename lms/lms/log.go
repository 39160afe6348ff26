package lms

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used for the few diagnostic events
// this package emits (key generation, successful signs, and every Verify
// call with its outcome).
// It never receives key material — only typecodes, leaf indices, and
// outcome. Callers may replace it wholesale, e.g. with a no-op logger
// in tests or a service's shared logger in production.
var Logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
