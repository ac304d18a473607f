package git

import (
	"strings"
	"testing"
)

func TestTruncateDiffShort(t *testing.T) {
	diff := "diff --git a/x b/x\n+one line\n"
	if got := TruncateDiff(diff); got != diff {
		t.Errorf("short diff should be unchanged, got %q", got)
	}
}

func TestTruncateDiffLong(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString("+ a changed line of reasonable length\n")
	}
	diff := sb.String()

	got := TruncateDiff(diff)
	if len(got) > MaxDiffBytes+len("\n... (diff truncated)") {
		t.Errorf("truncated diff too long: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "... (diff truncated)") {
		t.Error("missing truncation marker")
	}
	// Cut happens at a line boundary, not mid-line.
	body := strings.TrimSuffix(got, "\n... (diff truncated)")
	if !strings.HasSuffix(body, "\n") && !strings.HasSuffix(body, "length") {
		t.Errorf("cut mid-line: %q", body[len(body)-50:])
	}
}
