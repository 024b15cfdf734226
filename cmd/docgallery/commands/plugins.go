package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

func (p *PluginsCmd) Run(_ *Global, _ *CLI) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tHOOKS")
	for _, pl := range DefaultPlugins().List() {
		m := pl.Metadata()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Version, m.Type, strings.Join(plugin.Capabilities(pl), ", "))
	}
	return tw.Flush()
}
