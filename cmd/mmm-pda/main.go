package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

const usage = `usage: mmm-pda <command> [flags]

commands:
  derive   derive an MMM entity address
  serve    run the address gRPC service
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mmm-pda: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("command is required")
	}

	var err error
	switch args[0] {
	case "derive":
		err = runDerive(args[1:], stdout, stderr)
	case "serve":
		err = runServe(args[1:], stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprint(stderr, usage)
		err = errors.Errorf("unknown command %q", args[0])
	}

	if err == flag.ErrHelp {
		return nil
	}
	return err
}
