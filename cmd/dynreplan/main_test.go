package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("expected no log file without -debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file with -debug")
	}
	defer f.Close()
	defer log.SetOutput(io.Discard)

	log.Println("hello")
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file content %q", data)
	}
}

func TestSetupLoggingRotates(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()
	defer log.SetOutput(io.Discard)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d files in %s, want current and rotated", len(entries), logDir)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log is %d bytes", info.Size())
	}
}

func TestParseDims(t *testing.T) {
	h, w, err := parseDims("20X30")
	if err != nil || h != 20 || w != 30 {
		t.Errorf("parseDims = %d, %d, %v", h, w, err)
	}
	for _, bad := range []string{"20", "ax3", "3xb", ""} {
		if _, _, err := parseDims(bad); !errors.Is(err, errBadDims) {
			t.Errorf("parseDims(%q) err = %v", bad, err)
		}
	}
}

func TestRunDemo(t *testing.T) {
	*demoFlag = "12x16"
	defer func() { *demoFlag = "50x50" }()

	var buf bytes.Buffer
	if err := run(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Result: ") {
		t.Errorf("output:\n%s", buf.String())
	}
}
