//go:build linux

package unveil

import (
	ll "github.com/landlock-lsm/go-unveil/unveil/syscall"
	"golang.org/x/sys/unix"
)

func (sysKernel) setNoNewPrivs() error {
	return ll.AllThreadsPrctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0)
}
