package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docgallery/cmd/docgallery/commands"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docgallery"),
		kong.Description("Build Markdown documentation with an example gallery"),
		kong.Vars{"version": version.String()},
		kong.Bind(&commands.Global{}),
		kong.UsageOnError(),
	)
	err := parser.Run(cli)
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
