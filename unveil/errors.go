package unveil

import (
	"errors"
	"fmt"
)

// Errors returned by Session methods. They are wrapped together with
// the underlying system error, so both can be matched with errors.Is.
var (
	// ErrKernelFacilityUnavailable means that Landlock is missing or
	// disabled, or that no ruleset could be created. No sandbox can
	// be built.
	ErrKernelFacilityUnavailable = errors.New("unveil: landlock unavailable")

	// ErrInvalidPermissionChar means that a permission string
	// contained a character other than 'r', 'w', 'x' or 'c'.
	ErrInvalidPermissionChar = errors.New("unveil: invalid permission character")

	// ErrAmbiguousNullArgument means that exactly one of path and
	// permissions was empty.
	ErrAmbiguousNullArgument = errors.New("unveil: path and permissions must both be set or both be empty")

	// ErrPathResolutionFailed means that a path could not be opened.
	// The session stays usable.
	ErrPathResolutionFailed = errors.New("unveil: cannot resolve path")

	// ErrRuleRegistrationFailed means that the kernel rejected a rule.
	// The session stays usable.
	ErrRuleRegistrationFailed = errors.New("unveil: cannot add rule")

	// ErrAlreadyCommitted means that a rule was granted after the
	// session was finalized.
	ErrAlreadyCommitted = errors.New("unveil: already committed")

	// ErrCommitFailed means that the ruleset could not be enforced.
	// The process is not sandboxed.
	ErrCommitFailed = errors.New("unveil: commit failed")
)

// IsFatal reports whether err means that the process can not be
// sandboxed by the session that returned it.
func IsFatal(err error) bool {
	return errors.Is(err, ErrKernelFacilityUnavailable) || errors.Is(err, ErrCommitFailed)
}

// Denotes an error that should not have happened.
// If such an error occurs anyway, please try upgrading the library
// and file a bug to github.com/landlock-lsm/go-unveil if the issue persists.
func bug(err error) error {
	return fmt.Errorf("BUG(go-unveil): This should not have happened: %w", err)
}
