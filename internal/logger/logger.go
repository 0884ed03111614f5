package logger

import (
	"io"
	"os"
	"strings"

	"vivaham/internal/config"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide log entry. Packages log through it so fields set
// at startup (service, env) appear on every line.
var (
	base *logrus.Logger
	Log  *logrus.Entry
)

func init() {
	Init("info", "text", "dev", os.Stderr)
}

// InitFromConfig configures Log from the application config.
func InitFromConfig(cfg *config.Config) {
	Init(cfg.Log.Level, cfg.Log.Format, cfg.Env, os.Stderr)
}

// Init replaces Log with a logger writing to out at level in format
// ("text" or "json"). Unknown levels fall back to info.
func Init(level, format, env string, out io.Writer) {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	base = l
	Log = l.WithFields(logrus.Fields{"service": "vivaham", "env": env})
}

// Writer returns a writer that logs each line at info level, used to route
// the HTTP access log through logrus.
func Writer() *io.PipeWriter {
	return base.WriterLevel(logrus.InfoLevel)
}
