package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/cmd/vender-candy/buy"
	"github.com/temoto/vender-candy/cmd/vender-candy/catalog"
	"github.com/temoto/vender-candy/cmd/vender-candy/purchase"
	"github.com/temoto/vender-candy/cmd/vender-candy/shell"
	"github.com/temoto/vender-candy/cmd/vender-candy/subcmd"
	"github.com/temoto/vender-candy/internal/state"
	"github.com/temoto/vender-candy/internal/tele"
	"github.com/temoto/vender-candy/log2"
)

const defaultConfigPath = "vender-candy.hcl"

var log = log2.NewStderr(log2.LInfo)

var modules = []subcmd.Mod{
	purchase.Mod,
	buy.Mod,
	catalog.Mod,
	shell.Mod,
}

func main() {
	flagset := flag.NewFlagSet("vender-candy", flag.ExitOnError)
	flagConfig := flagset.String("config", defaultConfigPath, "")
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), "usage: vender-candy [-config FILE] COMMAND [args]\n")
		flagset.PrintDefaults()
		subcmd.Usage(flagset.Output(), modules)
	}
	_ = flagset.Parse(os.Args[1:])

	command := "purchase"
	if flagset.NArg() > 0 {
		command = flagset.Arg(0)
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		flagset.Usage()
		log.Fatal(err)
	}

	config, err := readConfig(*flagConfig)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	ctx, g := state.NewContext(log, new(tele.Tele))
	var args []string
	if flagset.NArg() > 1 {
		args = flagset.Args()[1:]
	}
	err = mod.Main(ctx, config, args)
	if err != nil {
		g.Error(err, "command=%s", mod.Name)
	}
	g.Close()
	if err != nil {
		os.Exit(1)
	}
}

// readConfig falls back to built-in catalog and coins when the default file is absent.
func readConfig(path string) (*state.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Debugf("config file %s not found, using defaults", path)
			return state.DefaultConfig(), nil
		}
	}
	return state.ReadConfig(log, state.NewOsFullReader(), path)
}
