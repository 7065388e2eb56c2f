package llrules_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/landlock-lsm/go-unveil/unveil"
	"github.com/landlock-lsm/go-unveil/unveil/llrules"
	"github.com/landlock-lsm/go-unveil/unveil/unveiltest"
)

func TestNames(t *testing.T) {
	want := []string{"dns", "shared", "tmp", "tty"}
	if diff := cmp.Diff(want, llrules.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	for _, n := range want {
		rules, ok := llrules.Lookup(n)
		if !ok || len(rules) == 0 {
			t.Errorf("Lookup(%q) = %v, %v; want rules", n, rules, ok)
		}
		for _, r := range rules {
			if _, err := unveil.ParsePermissions(r.Permissions); err != nil {
				t.Errorf("group %q, rule %v: %v", n, r, err)
			}
		}
	}
	if _, ok := llrules.Lookup("nope"); ok {
		t.Errorf("Lookup(\"nope\") succeeded, want failure")
	}
}

func TestApplySkipsMissingPaths(t *testing.T) {
	unveiltest.RequireABI(t, 1)

	dir := t.TempDir()
	s := unveil.NewSession()
	err := llrules.Apply(s, []unveil.Rule{
		{Path: filepath.Join(dir, "does_not_exist"), Permissions: "r"},
		{Path: dir, Permissions: "rw"},
	})
	if err != nil {
		t.Errorf("Apply(): %v", err)
	}
	if got := s.Phase(); got != unveil.Active {
		t.Errorf("Phase() = %v, want %v", got, unveil.Active)
	}
}

func TestApplyReportsOtherFailures(t *testing.T) {
	unveiltest.RequireABI(t, 1)

	dir := t.TempDir()
	s := unveil.NewSession()
	err := llrules.Apply(s, []unveil.Rule{
		{Path: dir, Permissions: "rz"},
		{Path: dir, Permissions: "r"},
		{Path: "", Permissions: "r"},
	})
	if !errors.Is(err, unveil.ErrInvalidPermissionChar) {
		t.Errorf("Apply() = %v, want ErrInvalidPermissionChar", err)
	}
	if !errors.Is(err, unveil.ErrAmbiguousNullArgument) {
		t.Errorf("Apply() = %v, want ErrAmbiguousNullArgument", err)
	}
}

func TestDNSFiles(t *testing.T) {
	unveiltest.RunInSubprocess(t, func() {
		unveiltest.RequireABI(t, 1)

		if _, err := os.Stat("/etc/hosts"); err != nil {
			t.Skipf("/etc/hosts: %v", err)
		}
		s := unveil.NewSession()
		if err := llrules.Apply(s, llrules.DNS()); err != nil {
			t.Fatalf("Apply(DNS): %v", err)
		}
		if err := s.Finalize(); err != nil {
			t.Fatalf("Finalize(): %v", err)
		}

		if _, err := os.ReadFile("/etc/hosts"); err != nil {
			t.Errorf("os.ReadFile(/etc/hosts): %v", err)
		}
		if _, err := os.ReadDir("/etc"); err == nil {
			t.Errorf("os.ReadDir(/etc) succeeded, want access denied")
		}
	})
}
