package main

// Notes:
// - printUsage/printCompileUsage/printInitUsage: we test that required
//   content is present, not exact formatting.
// - runHelp: we test routing to the correct help topic.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(*bytes.Buffer)
		want  []string
	}{
		{
			name:  "main",
			print: func(b *bytes.Buffer) { printUsage(b) },
			want:  []string{"Usage: nmd", "Commands:", "compile", "init", "version", "help"},
		},
		{
			name:  "compile",
			print: func(b *bytes.Buffer) { printCompileUsage(b) },
			want:  []string{"Usage: nmd compile", "--output", "--lenient", "--toc", "--only", "NMD_WORKERS"},
		},
		{
			name:  "init",
			print: func(b *bytes.Buffer) { printInitUsage(b) },
			want:  []string{"Usage: nmd init", "--force", "--name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output should contain %q", s)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"compile"}, "Usage: nmd compile", ""},
		{[]string{"init"}, "Usage: nmd init", ""},
		{[]string{"version"}, "Usage: nmd version", ""},
		{[]string{"help"}, "Usage: nmd help", ""},
		{[]string{"bogus"}, "", "Unknown command: bogus"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
