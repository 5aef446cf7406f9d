package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/OnTap/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("OnTap"), kong.Description("OnTap is a brewery taproom manager that syncs taplists from Untappd."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
