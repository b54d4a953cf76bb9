// ABOUTME: logrus logger construction with optional rotating file output.
// ABOUTME: Logs go to stderr so stdout stays free for MCP stdio and command output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Params struct {
	LogFileName   string
	LogLevel      string
	LogFormatJSON bool
	// Output replaces stderr as the console destination.
	Output io.Writer
}

// New builds a logger. When LogFileName is set, entries are written to both
// the console and a rotating log file.
func New(params Params) (*logrus.Logger, error) {
	level, err := GetLevel(params.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if params.LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	console := params.Output
	if console == nil {
		console = os.Stderr
	}

	if params.LogFileName == "" {
		logger.SetOutput(console)
		return logger, nil
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(console, lumberJackLogger))

	return logger, nil
}

// GetLevel parses a level name; empty means info.
func GetLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return logrus.InfoLevel, nil
	case "warning":
		return logrus.WarnLevel, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q (use debug, info, warn, or error)", level)
	}
	return parsed, nil
}
