package unveil

import (
	"fmt"

	ll "github.com/landlock-lsm/go-unveil/unveil/syscall"
)

// Access permission sets for the unveil permission letters.
//
// The refer right is part of every set except execute, because
// moving a file between two unveiled directories needs it on both
// ends. Kernels below Landlock V2 do not know it; it gets removed
// during negotiation there.
const (
	// 'r': read files, list directories.
	accessFSRead AccessFSSet = ll.AccessFSReadFile | ll.AccessFSReadDir | ll.AccessFSRefer

	// 'w': write and truncate files.
	accessFSWrite AccessFSSet = ll.AccessFSWriteFile | ll.AccessFSTruncate | ll.AccessFSRefer

	// 'x': execute files. execve opens the file for reading, so
	// Landlock checks read_file as well.
	accessFSExecute AccessFSSet = ll.AccessFSExecute | ll.AccessFSReadFile

	// 'c': create and remove directory entries of any type.
	accessFSCreate AccessFSSet = ll.AccessFSRemoveDir | ll.AccessFSRemoveFile | ll.AccessFSMakeChar | ll.AccessFSMakeDir | ll.AccessFSMakeReg | ll.AccessFSMakeSock | ll.AccessFSMakeFifo | ll.AccessFSMakeBlock | ll.AccessFSMakeSym | ll.AccessFSRefer

	// The set of access rights a session asks the kernel to handle.
	accessFSUnveil = accessFSRead | accessFSWrite | accessFSExecute | accessFSCreate

	// The set of access rights the kernel accepts in a rule for a
	// path that is not a directory.
	accessFile AccessFSSet = ll.AccessFSExecute | ll.AccessFSWriteFile | ll.AccessFSReadFile | ll.AccessFSTruncate
)

// ParsePermissions translates unveil permission letters into the
// corresponding set of Landlock access rights.
//
// Every letter must be one of 'r', 'w', 'x' or 'c'. Letters may
// repeat and their order does not matter. Any other character makes
// the whole string invalid.
func ParsePermissions(permissions string) (AccessFSSet, error) {
	var a AccessFSSet
	for i := 0; i < len(permissions); i++ {
		switch c := permissions[i]; c {
		case 'r':
			a = a.union(accessFSRead)
		case 'w':
			a = a.union(accessFSWrite)
		case 'x':
			a = a.union(accessFSExecute)
		case 'c':
			a = a.union(accessFSCreate)
		default:
			return 0, fmt.Errorf("%w %q in %q", ErrInvalidPermissionChar, c, permissions)
		}
	}
	return a, nil
}
