// ABOUTME: Logger construction shared by the CLI and MCP server.
// ABOUTME: Warnings go to stderr so they never mix with command output.

package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func New(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
	})

	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
