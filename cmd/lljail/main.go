// Command lljail runs a program with its file system access restricted
// to the paths given on the command line.
//
// Usage:
//
//	lljail [--debug] [--log-format text|json] [--preset NAME]... [-[rwxc] PATH]... -- PROGRAM [ARG]...
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/landlock-lsm/go-unveil/unveil"
	"github.com/landlock-lsm/go-unveil/unveil/llrules"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type config struct {
	help      bool
	debug     bool
	logFormat string
	presets   []string
	rules     []unveil.Rule
	argv      []string
}

var errMissingProgram = errors.New("missing program to execute")

func isRuleFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		if !strings.ContainsRune("rwxc", c) {
			return false
		}
	}
	return true
}

func parseArgs(args []string) (config, error) {
	var cfg config
	for len(args) > 0 {
		arg := args[0]
		args = args[1:]

		switch arg {
		case "-h", "--help":
			cfg.help = true
			return cfg, nil
		case "--debug":
			cfg.debug = true
			continue
		case "--log-format", "--preset":
			if len(args) == 0 {
				return cfg, fmt.Errorf("flag %s needs an argument", arg)
			}
			if arg == "--preset" {
				if _, ok := llrules.Lookup(args[0]); !ok {
					return cfg, fmt.Errorf("unknown preset %q, known presets are %s", args[0], strings.Join(llrules.Names(), ", "))
				}
				cfg.presets = append(cfg.presets, args[0])
			} else {
				cfg.logFormat = args[0]
			}
			args = args[1:]
			continue
		case "--":
			if len(args) == 0 {
				return cfg, errMissingProgram
			}
			cfg.argv = args
			return cfg, nil
		}

		if !isRuleFlag(arg) {
			return cfg, fmt.Errorf("unrecognized flag %s. A flag must be composed from the set [rwxc]", arg)
		}
		if len(args) == 0 || args[0] == "--" {
			return cfg, fmt.Errorf("flag %s needs a path", arg)
		}
		cfg.rules = append(cfg.rules, unveil.Rule{Path: args[0], Permissions: arg[1:]})
		args = args[1:]
	}
	return cfg, errMissingProgram
}

func configLogrus(cfg config) error {
	if cfg.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	switch f := cfg.logFormat; f {
	case "", "text":
		// do nothing
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	default:
		return errors.New("invalid log-format: " + f)
	}
	return nil
}

func help(w io.Writer) {
	fmt.Fprintln(w, "  lljail [--debug] [--log-format text|json] [--preset NAME]... [-[rwxc] PATH]... -- PROGRAM [ARG]...")
	fmt.Fprintln(w, "Restricts file access of a launched executable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -r PATH         permit reading for the path")
	fmt.Fprintln(w, "  -w PATH         permit writing for the path")
	fmt.Fprintln(w, "  -x PATH         permit executing for the path")
	fmt.Fprintln(w, "  -c PATH         permit creating and removing entries beneath the path")
	fmt.Fprintln(w, "  The letters can be combined, as in -rwc PATH.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  --preset NAME   grant a predefined group of rules (%s)\n", strings.Join(llrules.Names(), ", "))
	fmt.Fprintln(w, "  --debug         enable debug logging")
	fmt.Fprintln(w, "  --log-format    set the log format (text or json)")
	fmt.Fprintln(w, "  -h, --help      show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintln(w, "  lljail --preset shared -rx /usr/bin -rw /tmp -r /etc -- /bin/bash")
}

// restrict grants all rules on s and finalizes it. Failed grants are
// reported and skipped.
func restrict(s *unveil.Session, cfg config) error {
	for _, name := range cfg.presets {
		rules, _ := llrules.Lookup(name)
		if err := llrules.Apply(s, rules); err != nil {
			logrus.WithError(err).WithField("preset", name).Error("grant failed")
		}
	}
	for _, r := range cfg.rules {
		if err := s.GrantRule(r); err != nil {
			logrus.WithError(err).WithField("rule", r.String()).Error("grant failed")
		}
	}
	return s.Finalize()
}

// diagnostic formats err as a message for the terminal.
func diagnostic(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// A jail runs one lljail invocation. The fields are replaced in tests.
type jail struct {
	stdout, stderr io.Writer

	lookPath func(file string) (string, error)
	restrict func(cfg config) error
	exec     func(argv0 string, argv []string, envv []string) error
	environ  func() []string
}

func newJail() *jail {
	return &jail{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		lookPath: exec.LookPath,
		restrict: func(cfg config) error {
			return restrict(unveil.NewSession(), cfg)
		},
		exec:    unix.Exec,
		environ: os.Environ,
	}
}

// run returns the exit status. The program is executed only after
// the session was finalized successfully.
func (j *jail) run(args []string) int {
	if len(args) == 0 {
		help(j.stderr)
		return 1
	}
	cfg, err := parseArgs(args)
	if cfg.help {
		help(j.stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintln(j.stderr, diagnostic(err))
		return 1
	}
	if err := configLogrus(cfg); err != nil {
		fmt.Fprintln(j.stderr, diagnostic(err))
		return 1
	}

	prog, err := j.lookPath(cfg.argv[0])
	if err != nil {
		fmt.Fprintf(j.stderr, "Failed to execute %q: %v\n", cfg.argv[0], err)
		return 1
	}

	if err := j.restrict(cfg); err != nil {
		logrus.WithError(err).Error("failed to lock down landlock ruleset, not executing the program")
		return 1
	}

	// unix.Exec only returns on failure.
	if err := j.exec(prog, cfg.argv, j.environ()); err != nil {
		fmt.Fprintf(j.stderr, "Failed to execute %q: %v\n", prog, err)
		fmt.Fprintln(j.stderr, "Hint: access to the binary, the interpreter or shared libraries may be denied.")
		return 1
	}
	return 0
}

func main() {
	os.Exit(newJail().run(os.Args[1:]))
}
