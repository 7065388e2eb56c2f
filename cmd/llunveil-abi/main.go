// Command llunveil-abi prints the Landlock ABI version that unveil
// sessions negotiate on the running kernel.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/landlock-lsm/go-unveil/unveil"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const usage = `print the negotiated Landlock ABI version

Prints 0 if Landlock is not available.`

type report struct {
	ABI     int    `json:"abi"`
	Handled string `json:"handled"`
}

func writeReport(w io.Writer, r report, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(r)
	}
	if r.ABI == 0 {
		_, err := fmt.Fprintln(w, r.ABI)
		return err
	}
	_, err := fmt.Fprintf(w, "%d %s\n", r.ABI, r.Handled)
	return err
}

func main() {
	app := cli.NewApp()
	app.Name = "llunveil-abi"
	app.Usage = usage

	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "limit",
			Usage: "Negotiate at most this ABI version.",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "Print the result as JSON.",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging.",
		},
	}

	app.Action = func(ctx *cli.Context) error {
		if ctx.NArg() != 0 {
			return fmt.Errorf("unexpected arguments %q", []string(ctx.Args()))
		}
		if ctx.Bool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}

		var r report
		v, handled, err := unveil.Probe(unveil.WithABILimit(ctx.Int("limit")))
		if err != nil {
			logrus.WithError(err).Debug("probe failed")
		} else {
			r = report{ABI: v, Handled: handled.String()}
		}
		return writeReport(os.Stdout, r, ctx.Bool("json"))
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "llunveil-abi: %v\n", err)
		os.Exit(1)
	}
}
