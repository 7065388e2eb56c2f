//go:build linux

package llunveil_test

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/landlock-lsm/go-unveil/unveil"
	"github.com/landlock-lsm/go-unveil/unveil/llunveil"
	"github.com/landlock-lsm/go-unveil/unveil/unveiltest"
)

func TestUnveilBlock(t *testing.T) {
	unveiltest.RunInSubprocess(t, func() {
		unveiltest.RequireABI(t, 1)

		dir := unveiltest.TempDir(t)
		allowed := filepath.Join(dir, "allowed")
		if err := os.Mkdir(allowed, 0700); err != nil {
			t.Fatalf("os.Mkdir(%q): %v", allowed, err)
		}
		forbidden := filepath.Join(dir, "forbidden")
		if err := os.WriteFile(forbidden, []byte("secret"), 0600); err != nil {
			t.Fatalf("os.WriteFile(%q, ...): %v", forbidden, err)
		}

		if err := llunveil.Unveil(allowed, "rwc"); err != nil {
			t.Fatalf("Unveil(%q, \"rwc\"): %v", allowed, err)
		}
		if err := llunveil.Unveil(dir, ""); !errors.Is(err, unveil.ErrAmbiguousNullArgument) {
			t.Errorf("Unveil(%q, \"\") = %v, want ErrAmbiguousNullArgument", dir, err)
		}
		if err := llunveil.Unveil("", ""); err != nil {
			t.Fatalf("Unveil(\"\", \"\"): %v", err)
		}
		if err := llunveil.UnveilBlock(); err != nil {
			t.Errorf("UnveilBlock() after commit = %v, want success", err)
		}
		if err := llunveil.Unveil(dir, "r"); !errors.Is(err, unveil.ErrAlreadyCommitted) {
			t.Errorf("Unveil(%q, \"r\") = %v, want ErrAlreadyCommitted", dir, err)
		}

		if err := os.WriteFile(filepath.Join(allowed, "new"), nil, 0600); err != nil {
			t.Errorf("creating a file in %q: %v", allowed, err)
		}
		if _, err := os.ReadFile(forbidden); !errors.Is(err, syscall.EACCES) {
			t.Errorf("os.ReadFile(%q) = %v, want EACCES", forbidden, err)
		}
	})
}
