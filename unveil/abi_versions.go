package unveil

import (
	"errors"
	"fmt"
	"syscall"
)

type abiInfo struct {
	version           int
	supportedAccessFS AccessFSSet
}

// abiInfos is indexed by Landlock ABI version. Only the access
// rights that unveil permissions can express are tracked here.
var abiInfos = []abiInfo{
	{
		version:           0,
		supportedAccessFS: 0,
	},
	{
		version:           1,
		supportedAccessFS: (1 << 13) - 1,
	},
	{
		version:           2,
		supportedAccessFS: (1 << 14) - 1, // + refer
	},
	{
		version:           3,
		supportedAccessFS: (1 << 15) - 1, // + truncate
	},
}

var highestKnownABIVersion = abiInfos[len(abiInfos)-1]

// negotiate queries the running kernel for its Landlock ABI version
// and returns the matching capability table entry.
//
// If limit is positive, versions above it are treated as limit.
// Versions newer than the ones known to this package are treated as
// the newest known one.
func negotiate(k kernel, limit int) (abiInfo, error) {
	v, err := k.abiVersion()
	if err != nil || v <= 0 {
		return abiInfo{}, facilityUnavailable(err)
	}
	if limit > 0 && v > limit {
		v = limit
	}
	if v >= len(abiInfos) {
		v = len(abiInfos) - 1
	}
	return abiInfos[v], nil
}

func facilityUnavailable(err error) error {
	switch {
	case errors.Is(err, syscall.ENOSYS):
		return fmt.Errorf("%w: Landlock is not supported by your kernel: %w", ErrKernelFacilityUnavailable, err)
	case errors.Is(err, syscall.EOPNOTSUPP):
		return fmt.Errorf("%w: Landlock is not enabled in your kernel: %w", ErrKernelFacilityUnavailable, err)
	case err == nil:
		return fmt.Errorf("%w: kernel reported no Landlock ABI version", ErrKernelFacilityUnavailable)
	default:
		return fmt.Errorf("%w: %w", ErrKernelFacilityUnavailable, err)
	}
}

// Probe reports the Landlock ABI version that a session configured
// with opts would negotiate on the running kernel, together with the
// access rights it would handle. Probe creates no ruleset.
func Probe(opts ...Option) (version int, handled AccessFSSet, err error) {
	return probe(sysKernel{}, opts...)
}

func probe(k kernel, opts ...Option) (int, AccessFSSet, error) {
	s := newSession(k, opts...)
	abi, err := negotiate(s.k, s.abiLimit)
	if err != nil {
		return 0, 0, err
	}
	return abi.version, accessFSUnveil.intersect(abi.supportedAccessFS), nil
}
