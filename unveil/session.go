package unveil

import (
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	// Uninitialized sessions have not talked to the kernel yet.
	Uninitialized Phase = iota
	// Active sessions hold a Landlock ruleset and accept grants.
	Active
	// Committed sessions have enforced their ruleset on the process.
	Committed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Committed:
		return "committed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// A Session accumulates unveil rules in a Landlock ruleset and
// enforces them on the calling process when finalized.
//
// The zero value is not usable; use NewSession. A Session may be used
// from multiple goroutines.
type Session struct {
	k        kernel
	log      logrus.FieldLogger
	abiLimit int

	mu        sync.Mutex
	phase     Phase
	abi       abiInfo
	handled   AccessFSSet
	rulesetFD int
}

// NewSession returns an uninitialized session. The kernel is not
// contacted until the first call to Grant or Finalize.
func NewSession(opts ...Option) *Session {
	return newSession(sysKernel{}, opts...)
}

func newSession(k kernel, opts ...Option) *Session {
	s := &Session{
		k:         k,
		log:       logrus.StandardLogger(),
		rulesetFD: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// HandledAccess returns the access rights that the session restricts
// once finalized. It is empty until the session is initialized.
func (s *Session) HandledAccess() AccessFSSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handled
}

// ABIVersion returns the Landlock ABI version the session negotiated,
// or 0 if the session is not initialized.
func (s *Session) ABIVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abi.version
}

// Grant permits the given access to the file hierarchy at path once
// the session gets finalized.
//
// Calling Grant with both arguments empty is the same as calling
// Finalize. Calling it with exactly one of them empty fails with
// ErrAmbiguousNullArgument.
//
// Failures to open path (ErrPathResolutionFailed) and rejections of
// the rule by the kernel (ErrRuleRegistrationFailed) leave the
// session active, so that callers may go on granting other paths.
// Rights outside of HandledAccess are silently dropped.
func (s *Session) Grant(path, permissions string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" && permissions == "" {
		return s.finalize()
	}
	if s.phase == Committed {
		return fmt.Errorf("grant %q for %q: %w", permissions, path, ErrAlreadyCommitted)
	}
	if path == "" || permissions == "" {
		return fmt.Errorf("grant %q for %q: %w", permissions, path, ErrAmbiguousNullArgument)
	}
	access, err := ParsePermissions(permissions)
	if err != nil {
		return err
	}
	if err := s.init(); err != nil {
		return err
	}

	requested := access.intersect(s.handled)
	effective, err := addPath(s.k, s.rulesetFD, path, requested)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"path":      path,
		"requested": requested,
		"effective": effective,
	}).Debug("unveil: rule added")
	return nil
}

// GrantRule is like Grant, taking its arguments from r.
func (s *Session) GrantRule(r Rule) error {
	return s.Grant(r.Path, r.Permissions)
}

// Finalize enforces the accumulated rules on all threads of the
// calling process and sets the process's "no new privileges" flag.
// This can not be undone. A session that never had a rule granted
// denies all handled access everywhere.
//
// Finalizing an already committed session does nothing and succeeds.
//
// If Finalize fails, the process is not sandboxed and the session
// stays active.
func (s *Session) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalize()
}

func (s *Session) finalize() error {
	if s.phase == Committed {
		return nil
	}
	if err := s.init(); err != nil {
		return err
	}

	if err := s.k.setNoNewPrivs(); err != nil {
		// This prctl invocation should always work.
		return fmt.Errorf("%w: %w", ErrCommitFailed, bug(fmt.Errorf("prctl(PR_SET_NO_NEW_PRIVS): %w", err)))
	}
	if err := s.k.restrictSelf(s.rulesetFD); err != nil {
		if errors.Is(err, syscall.E2BIG) {
			// Other errors than E2BIG should never happen.
			return fmt.Errorf("%w: the maximum number of stacked rulesets is reached for the current thread: %w", ErrCommitFailed, err)
		}
		return fmt.Errorf("%w: %w", ErrCommitFailed, bug(fmt.Errorf("landlock_restrict_self: %w", err)))
	}

	fd := s.rulesetFD
	s.rulesetFD = -1
	s.phase = Committed
	if err := s.k.closeRuleset(fd); err != nil {
		s.log.WithError(err).Warn("unveil: closing ruleset after restrict_self")
	}
	s.log.WithField("handled", s.handled).Debug("unveil: committed")
	return nil
}

// init moves an uninitialized session to the active phase.
func (s *Session) init() error {
	if s.phase != Uninitialized {
		return nil
	}

	abi, err := negotiate(s.k, s.abiLimit)
	if err != nil {
		return err
	}
	handled := accessFSUnveil.intersect(abi.supportedAccessFS)

	fd, err := s.k.createRuleset(handled)
	if err != nil {
		if errors.Is(err, syscall.ENOSYS) || errors.Is(err, syscall.EOPNOTSUPP) {
			return facilityUnavailable(err)
		}
		if errors.Is(err, syscall.EINVAL) {
			// Bug, because the handled rights were narrowed to the ABI version above.
			err = bug(fmt.Errorf("unknown flags, unknown access, or too small size: %w", err))
		}
		return fmt.Errorf("%w: landlock_create_ruleset: %w", ErrKernelFacilityUnavailable, err)
	}

	s.abi = abi
	s.handled = handled
	s.rulesetFD = fd
	s.phase = Active
	s.log.WithFields(logrus.Fields{
		"abi":     abi.version,
		"handled": handled,
	}).Debug("unveil: ruleset created")
	return nil
}
