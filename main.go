package main

import (
	"github.com/hamza13-12/flickfeed/cmd"

	"github.com/alecthomas/kong"
)

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("flickfeed"),
		kong.Description("Social movie review API."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
