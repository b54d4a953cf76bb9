// ABOUTME: Tests for logger construction.
// ABOUTME: Covers level parsing, console output, and file output.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"INFO":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for in, want := range cases {
		got, err := GetLevel(in)
		if err != nil {
			t.Errorf("GetLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("GetLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := GetLevel("chatty"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Params{LogLevel: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hidden")
	logger.WithField("client", "jane_doe").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "client=jane_doe") {
		t.Errorf("missing warn entry:\n%s", out)
	}
}

func TestNewWithFile(t *testing.T) {
	var buf bytes.Buffer
	base := filepath.Join(t.TempDir(), "trainerlog")

	logger, err := New(Params{LogFileName: base, LogFormatJSON: true, Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("report built")

	data, err := os.ReadFile(base + ".log")
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"report built"`) {
		t.Errorf("unexpected file contents: %s", data)
	}
	if !strings.Contains(buf.String(), "report built") {
		t.Errorf("console output missing entry: %s", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(Params{LogLevel: "loud"}); err == nil {
		t.Error("Expected error for invalid level")
	}
}
