// Command relight brightens low-light photos.
package main

import (
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type rootCmd struct{}

func (r *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "relight",
		Usage: "[subcommand] [flags]",
		Desc:  "Enhance images captured in low light.",
	}
}

func (r *rootCmd) Run(fl *pflag.FlagSet) {
	fl.Usage()
}

func (r *rootCmd) Subcommands() []cli.Command {
	return []cli.Command{
		&enhanceCmd{},
		&illumCmd{},
	}
}

func main() {
	cli.RunRoot(&rootCmd{})
}
