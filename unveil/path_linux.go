//go:build linux

package unveil

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// addPath registers a rule granting access to the file hierarchy at
// path. If path does not denote a directory, the directory-only
// rights are dropped from access first.
//
// It returns the access rights that were registered. When nothing is
// left after masking, no rule is added and the result is empty.
func addPath(k kernel, rulesetFD int, path string, access AccessFSSet) (AccessFSSet, error) {
	fd, err := unix.Open(path, unix.O_PATH|unix.O_CLOEXEC, 0)
	if err != nil {
		return 0, fmt.Errorf("%w %q: open: %w", ErrPathResolutionFailed, path, err)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, fmt.Errorf("%w %q: fstat: %w", ErrPathResolutionFailed, path, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		access = access.intersect(accessFile)
	}
	if access.isEmpty() {
		return 0, nil
	}

	if err := k.addPathBeneath(rulesetFD, fd, access); err != nil {
		if errors.Is(err, syscall.EINVAL) {
			// The ruleset access permissions must be a superset of the ones we restrict to.
			// This should never happen because the callers of addPath() ensure that.
			err = bug(fmt.Errorf("invalid flags, or inconsistent access in the rule: %w", err))
		} else if errors.Is(err, syscall.ENOMSG) {
			err = fmt.Errorf("empty access rights: %w", err)
		}
		return 0, fmt.Errorf("%w %q with access %v: landlock_add_rule: %w", ErrRuleRegistrationFailed, path, access, err)
	}
	return access, nil
}
