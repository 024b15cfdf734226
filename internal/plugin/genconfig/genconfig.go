// Package genconfig provides the generate-config directive, which embeds
// the resolved configuration of a preset in a page.
package genconfig

import (
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// DirectiveName is the name of the directive.
const DirectiveName = "generate-config"

type Plugin struct {
	plugin.BasePlugin
}

var _ plugin.DirectiveProvider = (*Plugin)(nil)

func New() *Plugin { return &Plugin{} }

func (*Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "genconfig",
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeDirective,
		Description: "Render a preset's configuration as a YAML block",
	}
}

func (*Plugin) Directives(*plugin.PluginContext) directive.Set {
	return directive.Set{DirectiveName: directive.Func{
		S:  directive.Spec{RequiredArguments: 1},
		Fn: run,
	}}
}

func run(ctx *directive.Context) ([]doctree.Node, error) {
	cfg, err := config.PresetConfig(ctx.Argument())
	if err != nil {
		return nil, err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString("```yaml\n")
	b.Write(data)
	b.WriteString("```\n")
	return []doctree.Node{&doctree.Markdown{Source: b.String(), Line: ctx.Line}}, nil
}
