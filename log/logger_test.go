package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Debug("hidden debug")
	logger.Notice("visible notice")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Fatalf("expected debug message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "visible notice") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected notice message tagged with module name; got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("step %d", 42)
	if !strings.Contains(buf.String(), "step 42") {
		t.Fatalf("expected debug message after raising verbosity; got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	type spec struct {
		in  string
		exp Level
	}
	specs := []spec{
		{"debug", Debug},
		{"INFO", Info},
		{"warn", Warning},
		{"error", Error},
		{"bogus", Notice},
	}

	for index, s := range specs {
		if out := ParseLevel(s.in); out != s.exp {
			t.Fatalf("[spec %d] expected level %d; got %d", index, s.exp, out)
		}
	}
}
