package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Environment{
		Now:         func() time.Time { return now },
		Stdout:      &stdout,
		Stderr:      &stderr,
		SetMaxProcs: func(bool, io.Writer) {},
	}, &stdout, &stderr
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// newTestDossier writes a two-document dossier named "Field Notes".
func newTestDossier(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeTestFile(t, dir, "nmd.yaml", "name: Field Notes\ndocuments:\n  - one.nmd\n  - two.nmd\n")
	writeTestFile(t, dir, "one.nmd", "# First\n\nHello **there**.")
	writeTestFile(t, dir, "two.nmd", "# Second\n\n- a\n- b")
	return dir
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
