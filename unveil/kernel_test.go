package unveil

import (
	"fmt"
	"os"
	"sync"
)

type fakeRule struct {
	path   string
	access AccessFSSet
}

// fakeKernel records the Landlock calls of a session.
type fakeKernel struct {
	mu sync.Mutex

	version     int
	versionErr  error
	createErr   error
	addErr      error
	prctlErr    error
	restrictErr error
	closeErr    error

	created   []AccessFSSet
	rules     []fakeRule
	prctls    int
	restricts []int
	closed    []int
}

const fakeRulesetFD = 1000

func (k *fakeKernel) abiVersion() (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.versionErr != nil {
		return -1, k.versionErr
	}
	return k.version, nil
}

func (k *fakeKernel) createRuleset(handled AccessFSSet) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.createErr != nil {
		return -1, k.createErr
	}
	k.created = append(k.created, handled)
	return fakeRulesetFD + len(k.created) - 1, nil
}

func (k *fakeKernel) addPathBeneath(rulesetFD, parentFD int, access AccessFSSet) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.addErr != nil {
		return k.addErr
	}
	if rulesetFD < fakeRulesetFD {
		return fmt.Errorf("unexpected ruleset fd %d", rulesetFD)
	}
	p, err := os.Readlink(fmt.Sprintf("/proc/self/fd/%d", parentFD))
	if err != nil {
		return err
	}
	k.rules = append(k.rules, fakeRule{path: p, access: access})
	return nil
}

func (k *fakeKernel) setNoNewPrivs() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.prctls++
	return k.prctlErr
}

func (k *fakeKernel) restrictSelf(rulesetFD int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.restrictErr != nil {
		return k.restrictErr
	}
	k.restricts = append(k.restricts, rulesetFD)
	return nil
}

func (k *fakeKernel) closeRuleset(rulesetFD int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = append(k.closed, rulesetFD)
	return k.closeErr
}
