// Command httpwasm runs http-wasm guests against an in-memory request, for
// trying out and debugging middleware without a real HTTP server.
//
//	httpwasm run -method POST -uri /v1/hi -H 'Content-Type: text/plain' -body hello guest.wasm
//	httpwasm exports guest.wasm
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(new(Run), "")
	subcommands.Register(new(Exports), "")

	verbose := flag.Bool("v", false, "enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(int(subcommands.Execute(context.Background())))
}
