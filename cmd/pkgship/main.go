package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/pkgship/cmd/pkgship/commands"
	"git.home.luguber.info/inful/pkgship/internal/pipeline"
	"github.com/alecthomas/kong"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pkgship"),
		kong.Description("Build, pack, and publish NuGet package artifacts."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(pipeline.ExitCode(err))
	}
}
