package logutils

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(lvl), nil
}
