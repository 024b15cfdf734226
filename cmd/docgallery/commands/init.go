package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docgallery/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Preset string `help:"Preset to start from (v1, v2, v3)"`
	Force  bool   `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Preset, i.Force); err != nil {
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}
