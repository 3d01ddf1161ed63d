package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/reglet-dev/http-wasm-guest/host"
)

// Exports implements subcommands.Command for the "exports" command.
type Exports struct {
	out io.Writer
}

// Name implements subcommands.Command.
func (*Exports) Name() string {
	return "exports"
}

// Synopsis implements subcommands.Command.
func (*Exports) Synopsis() string {
	return "lists the functions a guest exports and imports"
}

// Usage implements subcommands.Command.
func (*Exports) Usage() string {
	return "exports <guest.wasm>\n"
}

// SetFlags implements subcommands.Command.
func (*Exports) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (x *Exports) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	wasm, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fatalf("error reading guest: %v", err)
	}

	e, err := host.NewExecutor(ctx)
	if err != nil {
		return fatalf("error creating runtime: %v", err)
	}
	defer e.Close(ctx)

	exports, err := e.Inspect(ctx, wasm)
	if err != nil {
		return fatalf("error inspecting guest: %v", err)
	}
	printExports(x.writer(), exports)
	return subcommands.ExitSuccess
}

func (x *Exports) writer() io.Writer {
	if x.out != nil {
		return x.out
	}
	return os.Stdout
}

func printExports(w io.Writer, exports *host.Exports) {
	fmt.Fprintln(w, "exports:")
	for _, name := range exports.Functions {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "imports:")
	for _, name := range exports.Imports {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
