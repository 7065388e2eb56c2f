// Package llunveil offers unveil as a pair of process-wide functions.
//
// All calls share a single unveil.Session which is created on first
// use. Programs that need more control should use unveil.Session
// directly.
package llunveil

import (
	"sync"

	"github.com/landlock-lsm/go-unveil/unveil"
)

var session = sync.OnceValue(func() *unveil.Session {
	return unveil.NewSession()
})

// Unveil permits the given access to the file hierarchy at path once
// UnveilBlock is called. See unveil.Session.Grant for the meaning of
// permissions and of empty arguments.
func Unveil(path, permissions string) error {
	return session().Grant(path, permissions)
}

// UnveilBlock enforces all rules granted through Unveil on the calling
// process. Later calls to Unveil fail with unveil.ErrAlreadyCommitted.
func UnveilBlock() error {
	return session().Finalize()
}
