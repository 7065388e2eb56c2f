// Package unveiltest has helpers for tests that finalize unveil sessions.
//
// Finalizing a session restricts the whole test binary for the rest
// of its lifetime, so such tests re-execute themselves in a
// subprocess.
package unveiltest

import (
	"errors"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"

	ll "github.com/landlock-lsm/go-unveil/unveil/syscall"
)

const subprocessEnv = "UNVEIL_TEST_SUBPROCESS"

// RunInSubprocess runs the given test function in a re-executed copy
// of the test binary. Messages logged by the subprocess are reported
// on t, and t fails or skips when the subprocess did.
func RunInSubprocess(t *testing.T, f func()) {
	t.Helper()

	if IsRunningInSubprocess() {
		f()
		return
	}

	args := append(os.Args[1:], "-test.run="+runPattern(t.Name()))

	// Make sure that the parent process cleans up the actual TempDir.
	// If the child process uses t.TempDir(), it'll create it in $TMPDIR.
	t.Setenv("TMPDIR", t.TempDir())

	t.Setenv(subprocessEnv, "yes")
	out, err := exec.Command(os.Args[0], args...).CombinedOutput()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("Could not execute test in subprocess: %v", err)
	}

	res := parseTestOutput(string(out))
	switch {
	case res.failed || err != nil:
		msgs := res.messages
		if len(msgs) == 0 {
			// Crashes print no test messages.
			msgs = []string{string(out)}
		}
		t.Errorf("subprocess failed (%v):\n%s", err, strings.Join(msgs, "\n"))
	case res.skipped:
		t.Skipf("skipped in subprocess: %s", strings.Join(res.messages, "; "))
	default:
		for _, m := range res.messages {
			t.Log(m)
		}
	}
}

// runPattern returns a -test.run pattern which matches exactly the
// test with the given name. Each level of subtests is anchored on
// its own, because go test splits the pattern at slashes.
func runPattern(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = "^" + regexp.QuoteMeta(p) + "$"
	}
	return strings.Join(parts, "/")
}

type testOutput struct {
	failed   bool
	skipped  bool
	messages []string
}

// parseTestOutput extracts the verdict and the t.Log style messages
// from the output of a test binary.
func parseTestOutput(out string) testOutput {
	var res testOutput
	for _, l := range strings.Split(out, "\n") {
		tl := strings.TrimSpace(l)
		switch {
		case l == "FAIL", strings.HasPrefix(tl, "--- FAIL"):
			res.failed = true
		case strings.HasPrefix(tl, "--- SKIP"):
			res.skipped = true
		case strings.HasPrefix(tl, "---"), strings.HasPrefix(tl, "==="):
		case strings.HasPrefix(l, "    "):
			res.messages = append(res.messages, tl)
		}
	}
	return res
}

// IsRunningInSubprocess reports whether the current process was
// started by RunInSubprocess.
func IsRunningInSubprocess() bool {
	return os.Getenv(subprocessEnv) != ""
}

// TempDir is a replacement for t.TempDir() to be used in sandboxed tests.
// If we were using t.TempDir(), the test framework would try to remove it
// after the test, even in sandboxed subprocess tests where this fails.
func TempDir(t testing.TB) string {
	t.Helper()

	if IsRunningInSubprocess() {
		dir, err := os.MkdirTemp("", "UnveilTestTempDir")
		if err != nil {
			t.Fatalf("os.MkdirTemp: %v", err)
		}
		return dir
	}
	return t.TempDir()
}

// RequireABI skips the test if the kernel does not provide the given ABI version.
func RequireABI(t testing.TB, want int) {
	t.Helper()

	if v, err := ll.LandlockGetABIVersion(); err != nil || v < want {
		t.Skipf("Requires Landlock >= V%v, got V%v (err=%v)", want, v, err)
	}
}
