// ABOUTME: Tests for logger construction.
// ABOUTME: Verifies level selection and output routing.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("hidden")
	log.Warn("shown")

	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %v", log.GetLevel())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected debug output to be suppressed")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.WithField("id", "abc").Debug("moved note")

	if !strings.Contains(buf.String(), "moved note") || !strings.Contains(buf.String(), "id=abc") {
		t.Errorf("expected debug entry with field, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Warn("nowhere")
}
