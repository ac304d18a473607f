// Package git shells out to the git binary for the diff and commit flows.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotARepo is returned when the working directory is not inside a git
// repository.
var ErrNotARepo = errors.New("not a git repository")

// MaxDiffBytes caps diff text sent to a model. Anything past it is cut at a
// line boundary with a truncation marker.
const MaxDiffBytes = 4000

// run executes a git command and returns stdout.
func run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// git diff returns exit code 1 when there are differences — that's not an error.
		if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 1 && stderr.Len() == 0 {
			return stdout.String(), nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

// IsRepo reports whether the working directory is inside a git repository.
func IsRepo(ctx context.Context) bool {
	_, err := run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// StagedDiff returns the diff of the index against HEAD.
func StagedDiff(ctx context.Context) (string, error) {
	if !IsRepo(ctx) {
		return "", ErrNotARepo
	}
	return run(ctx, "diff", "--cached")
}

// Diff returns the working tree diff, optionally staged or restricted to one
// file.
func Diff(ctx context.Context, staged bool, file string) (string, error) {
	if !IsRepo(ctx) {
		return "", ErrNotARepo
	}
	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	if file != "" {
		args = append(args, "--", file)
	}
	return run(ctx, args...)
}

// NameStatus lists changed files with their status letters, one per line.
func NameStatus(ctx context.Context, staged bool) (string, error) {
	if !IsRepo(ctx) {
		return "", ErrNotARepo
	}
	args := []string{"diff", "--name-status"}
	if staged {
		args = append(args, "--cached")
	}
	return run(ctx, args...)
}

// Commit records the staged changes with the given message.
func Commit(ctx context.Context, message string) (string, error) {
	if !IsRepo(ctx) {
		return "", ErrNotARepo
	}
	return run(ctx, "commit", "-m", message)
}

// TruncateDiff cuts diff text at MaxDiffBytes on a line boundary and appends
// a marker so the model knows the input is partial.
func TruncateDiff(diff string) string {
	if len(diff) <= MaxDiffBytes {
		return diff
	}
	cut := diff[:MaxDiffBytes]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n... (diff truncated)"
}
