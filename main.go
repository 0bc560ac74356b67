package main

import (
	"pixgrid/mangle"
	"pixgrid/parallel"
	"pixgrid/tone"

	"github.com/alecthomas/kong"
)

var cli struct {
	Workers int `help:"Worker goroutines for file processing, 0 for one per CPU" default:"0"`

	Mangle mangle.CLICmd `cmd:"" help:"Crop, rotate, flip, filter and convert pictures in a folder"`
	Tone   tone.CLICmd   `cmd:"" help:"Sort pictures into dark and light folders by mean luminance"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pixgrid"),
		kong.Description("Pixel grid toolbox for pictures in a folder."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run(parallel.Start(cli.Workers)))
}
