package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/nftseries"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// except the program name and this command name. It is expected to read and
// write only to provided input and output. Commands that work on the ledger
// state load the process configuration first.
//
// Commands are small and can be combined with a unix pipe. For example, a
// relayer can sign the next nonce of a user and submit a burn at once:
//
//   $ seriesd sign-nonce -key user.key -nonce 3 \
//       | jq '{caller: "relayer.near", path: "burn/burn", msg: {token_id: "1:1", proof: .}}' \
//       | seriesd exec
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"exec":       cmdExec,
	"init":       cmdInit,
	"keyaddr":    cmdKeyaddr,
	"keygen":     cmdKeygen,
	"query":      cmdQuery,
	"sign-nonce": cmdSignNonce,
	"version":    cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s runs a series token ledger.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, nftseries.Version())
	return err
}
