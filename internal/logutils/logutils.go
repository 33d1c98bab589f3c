package logutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

// Setup points both zerolog and logrus at the log file. The terminal is
// owned by the TUI, so nothing is logged to stdout or stderr. An empty
// path discards all log output.
func Setup(level string, path string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.WriteCloser = nopCloser{io.Discard}
	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}

		err = os.MkdirAll(filepath.Dir(p), 0700)
		if err != nil {
			return nil, err
		}

		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open log file")
		}
		out = f
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrusLevel(lvl))

	return out, nil
}

func logrusLevel(lvl zerolog.Level) logrus.Level {
	switch lvl {
	case zerolog.TraceLevel:
		return logrus.TraceLevel
	case zerolog.DebugLevel:
		return logrus.DebugLevel
	case zerolog.WarnLevel:
		return logrus.WarnLevel
	case zerolog.ErrorLevel:
		return logrus.ErrorLevel
	case zerolog.FatalLevel:
		return logrus.FatalLevel
	case zerolog.PanicLevel, zerolog.Disabled:
		return logrus.PanicLevel
	}

	return logrus.InfoLevel
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
