// Command rv32vm runs or disassembles RV32IMF memory images.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32core/internal/config"
)

var log = logrus.New()

var configPath string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rv32vm",
		Short: "Run or disassemble RV32IMF memory images",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional TOML defaults file")
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	return root
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("rv32vm: cannot load config")
	}
	return cfg
}
