// Package llrules implements commonly used groups of unveil rules.
//
// The groups list paths which exist on common Linux distributions.
// Paths missing on the running system are skipped by Apply.
package llrules

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/landlock-lsm/go-unveil/unveil"
)

// SharedLibraries permits loading dynamically linked executables and
// the libraries they need.
func SharedLibraries() []unveil.Rule {
	// XXX: Use more specific paths once the loader's search path is
	// evaluated.
	return []unveil.Rule{
		{Path: "/lib", Permissions: "rx"},
		{Path: "/lib32", Permissions: "rx"},
		{Path: "/lib64", Permissions: "rx"},
		{Path: "/usr/lib", Permissions: "rx"},
		{Path: "/usr/lib32", Permissions: "rx"},
		{Path: "/usr/lib64", Permissions: "rx"},
		{Path: "/usr/local/lib", Permissions: "rx"},
		{Path: "/etc/ld.so.cache", Permissions: "r"},
		{Path: "/etc/ld.so.conf", Permissions: "r"},
		{Path: "/etc/ld.so.conf.d", Permissions: "r"},
	}
}

// DNS permits reading the files which name resolution consults.
func DNS() []unveil.Rule {
	return []unveil.Rule{
		{Path: "/etc/hosts", Permissions: "r"},
		{Path: "/etc/resolv.conf", Permissions: "r"},
		{Path: "/etc/nsswitch.conf", Permissions: "r"},
		{Path: "/etc/services", Permissions: "r"},
		{Path: "/etc/protocols", Permissions: "r"},
	}
}

// TTY permits terminal interaction.
func TTY() []unveil.Rule {
	return []unveil.Rule{
		{Path: "/dev/tty", Permissions: "rw"},
		{Path: "/dev/null", Permissions: "rw"},
		{Path: "/dev/pts", Permissions: "rw"},
		{Path: "/etc/terminfo", Permissions: "r"},
		{Path: "/usr/share/terminfo", Permissions: "r"},
		{Path: "/usr/lib/terminfo", Permissions: "r"},
	}
}

// Tmp permits full use of the system temporary directory.
func Tmp() []unveil.Rule {
	return []unveil.Rule{
		{Path: os.TempDir(), Permissions: "rwc"},
	}
}

var byName = map[string]func() []unveil.Rule{
	"shared": SharedLibraries,
	"dns":    DNS,
	"tty":    TTY,
	"tmp":    Tmp,
}

// Lookup returns the group of rules with the given name.
func Lookup(name string) ([]unveil.Rule, bool) {
	f, ok := byName[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names returns the names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply grants all rules on s. Rules for paths which do not exist are
// skipped. Apply keeps going after other failures and returns them
// joined, unless the failure means that s can not be used any more.
func Apply(s *unveil.Session, rules []unveil.Rule) error {
	var errs []error
	for _, r := range rules {
		err := s.GrantRule(r)
		switch {
		case err == nil:
		case errors.Is(err, unveil.ErrPathResolutionFailed) && errors.Is(err, os.ErrNotExist):
			// Not present on this system.
		case unveil.IsFatal(err), errors.Is(err, unveil.ErrAlreadyCommitted):
			return fmt.Errorf("rule %v: %w", r, err)
		default:
			errs = append(errs, fmt.Errorf("rule %v: %w", r, err))
		}
	}
	return errors.Join(errs...)
}
