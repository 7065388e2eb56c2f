package unveil

import "github.com/sirupsen/logrus"

// An Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger the session reports its progress to.
// By default, the logrus standard logger is used.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithABILimit makes the session behave as if the kernel supported
// at most the given Landlock ABI version. Access rights introduced by
// later versions are not handled, which means they stay permitted
// everywhere.
//
// Versions below 1 are ignored.
func WithABILimit(version int) Option {
	return func(s *Session) {
		if version >= 1 {
			s.abiLimit = version
		}
	}
}
