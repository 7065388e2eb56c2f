//go:build !linux

package unveil

import "syscall"

func (sysKernel) setNoNewPrivs() error {
	return syscall.ENOSYS
}
