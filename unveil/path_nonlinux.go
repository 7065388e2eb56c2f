//go:build !linux

package unveil

import (
	"fmt"
	"syscall"
)

func addPath(k kernel, rulesetFD int, path string, access AccessFSSet) (AccessFSSet, error) {
	return 0, fmt.Errorf("%w %q: %w", ErrPathResolutionFailed, path, syscall.ENOSYS)
}
