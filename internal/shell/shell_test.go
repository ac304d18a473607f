package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExecCapturesOutput(t *testing.T) {
	s := New(t.TempDir())

	stdout, stderr, err := s.Exec(context.Background(), "echo hello; echo oops >&2")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if strings.TrimSpace(stdout) != "hello" {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.TrimSpace(stderr) != "oops" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecStatePersists(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	if _, _, err := s.Exec(context.Background(), "export FOO=bar; mkdir sub; cd sub"); err != nil {
		t.Fatalf("setup command: %v", err)
	}

	stdout, _, err := s.Exec(context.Background(), "echo $FOO; pwd")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[0] != "bar" {
		t.Errorf("env not persisted: %q", stdout)
	}
	if !strings.HasSuffix(lines[1], "sub") {
		t.Errorf("cwd not persisted: %q", lines[1])
	}
}

func TestExitCode(t *testing.T) {
	s := New(t.TempDir())

	_, _, err := s.Exec(context.Background(), "exit 3")
	if got := ExitCode(err); got != 3 {
		t.Errorf("ExitCode = %d, want 3", got)
	}
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
}

func TestExecParseError(t *testing.T) {
	s := New(t.TempDir())
	if _, _, err := s.Exec(context.Background(), "if then fi"); err == nil {
		t.Fatal("expected parse error")
	}
}
