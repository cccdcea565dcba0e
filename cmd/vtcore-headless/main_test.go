package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	w.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(data)
}

func writeTempInput(t *testing.T, data string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "vtcore-headless-*.bin")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.WriteString(data); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestRunTextOutput(t *testing.T) {
	path := writeTempInput(t, "Hello\r\nWorld")
	cfg := fileConfig{Cols: 10, Rows: 3}

	out := captureStdout(t, func() {
		if err := run(cfg, path, true); err != nil {
			t.Fatalf("run() error: %v", err)
		}
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 || lines[0] != "Hello" || lines[1] != "World" {
		t.Errorf("text output lines = %#v, want [Hello World \"\"]", lines)
	}
}

func TestRunJSONOutput(t *testing.T) {
	path := writeTempInput(t, "Hi")
	cfg := fileConfig{Cols: 10, Rows: 3}

	out := captureStdout(t, func() {
		if err := run(cfg, path, false); err != nil {
			t.Fatalf("run() error: %v", err)
		}
	})

	if !strings.Contains(out, `"text":"Hi"`) {
		t.Errorf("JSON output = %q, want it to contain the row text", out)
	}
	if !strings.Contains(out, `"rows":3`) || !strings.Contains(out, `"cols":10`) {
		t.Errorf("JSON output = %q, want rows/cols fields", out)
	}
}

func TestRunMissingInputFileErrors(t *testing.T) {
	cfg := fileConfig{Cols: 10, Rows: 3}
	if err := run(cfg, "/nonexistent/path/to/input", true); err == nil {
		t.Error("expected an error opening a nonexistent input file")
	}
}
