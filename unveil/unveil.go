// Package unveil implements OpenBSD-style unveil(2) on top of Linux Landlock.
//
// A Session collects path rules one call at a time and enforces them
// all at once when it gets finalized:
//
//	s := unveil.NewSession()
//	if err := s.Grant("/usr", "rx"); err != nil {
//	    log.Printf("unveil /usr: %v", err)
//	}
//	if err := s.Grant("/tmp", "rwc"); err != nil {
//	    log.Printf("unveil /tmp: %v", err)
//	}
//	if err := s.Finalize(); err != nil {
//	    log.Fatalf("unveil: %v", err)
//	}
//
// Unlike on OpenBSD, nothing is restricted before Finalize returns
// successfully. After that, paths which were not granted can not be
// read, written, executed or have entries created or removed below
// them, and no more grants are possible.
//
// # Permissions
//
// Permissions are given as a string of letters:
//
//   - 'r': read files and list directories
//   - 'w': write to and truncate files
//   - 'x': execute files, which includes reading them
//   - 'c': create and remove files, directories, symbolic links,
//     devices, named pipes and sockets
//
// When the path denotes a file rather than a directory, only the
// rights that make sense for files are granted: 'c' has no effect on
// a file, and 'r' only permits reading it.
//
// Renaming and linking files between directories needs Landlock V2.
// On Landlock V1 kernels, this is always forbidden after Finalize.
// Truncating files can only be restricted with Landlock V3 or later.
package unveil

import "fmt"

// A Rule is a single (path, permissions) pair as passed to Grant.
type Rule struct {
	Path        string
	Permissions string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s:%s", r.Permissions, r.Path)
}
