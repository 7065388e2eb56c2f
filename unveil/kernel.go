package unveil

import (
	"syscall"

	ll "github.com/landlock-lsm/go-unveil/unveil/syscall"
)

// kernel is the set of Landlock operations a Session needs.
type kernel interface {
	abiVersion() (int, error)
	createRuleset(handled AccessFSSet) (fd int, err error)
	addPathBeneath(rulesetFD, parentFD int, access AccessFSSet) error
	setNoNewPrivs() error
	restrictSelf(rulesetFD int) error
	closeRuleset(rulesetFD int) error
}

// sysKernel talks to the running kernel.
type sysKernel struct{}

func (sysKernel) abiVersion() (int, error) {
	return ll.LandlockGetABIVersion()
}

func (sysKernel) createRuleset(handled AccessFSSet) (int, error) {
	attr := ll.RulesetAttr{
		HandledAccessFS: uint64(handled),
	}
	return ll.LandlockCreateRuleset(&attr, 0)
}

func (sysKernel) addPathBeneath(rulesetFD, parentFD int, access AccessFSSet) error {
	pathBeneath := ll.PathBeneathAttr{
		ParentFd:      parentFD,
		AllowedAccess: uint64(access),
	}
	return ll.LandlockAddPathBeneathRule(rulesetFD, &pathBeneath, 0)
}

func (sysKernel) restrictSelf(rulesetFD int) error {
	return ll.AllThreadsLandlockRestrictSelf(rulesetFD, 0)
}

func (sysKernel) closeRuleset(rulesetFD int) error {
	return syscall.Close(rulesetFD)
}
