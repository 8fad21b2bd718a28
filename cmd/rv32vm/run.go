package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32core/pkg/bus"
	"github.com/bassosimone/rv32core/pkg/cpu"
	"github.com/bassosimone/rv32core/pkg/disasm"
	"github.com/bassosimone/rv32core/pkg/image"
)

// defaultMemorySize is the RAM size given to a bus.Memory when the CLI
// does not otherwise need a specific layout.
const defaultMemorySize = 1 << 24 // 16 MiB

func newRunCmd() *cobra.Command {
	var (
		imagePath string
		budget    uint64
		entry     uint32
		trace     bool
		console   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load an image and run it to completion or trap",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := loadConfig()
			flags := c.Flags()
			if imagePath == "" {
				imagePath = cfg.Image
			}
			if budget == 0 {
				budget = cfg.Budget
			}
			if budget == 0 {
				budget = 1_000_000
			}
			if !flags.Changed("entry") {
				entry = cfg.Entry
			}
			if !flags.Changed("trace") {
				trace = cfg.Trace
			}
			if !flags.Changed("console") {
				console = cfg.Console
			}

			fp, err := os.Open(imagePath)
			if err != nil {
				return err
			}
			defer fp.Close()

			data, err := image.LoadHex(fp)
			if err != nil {
				return err
			}

			mem := bus.NewMemory(defaultMemorySize)
			if err := mem.Load(0, data); err != nil {
				return err
			}

			var b bus.Bus = mem
			if console {
				mux := bus.NewMux(mem)
				con, err := bus.ConsoleAcceptConn(defaultMemorySize - 4096)
				if err != nil {
					return err
				}
				defer con.Close()
				mux.Attach(con)
				b = mux
			}

			machine := cpu.New(b)
			machine.PC = entry

			if trace {
				log.SetLevel(logrus.DebugLevel)
			}
			for i := uint64(0); i < budget; i++ {
				if trace {
					word, _ := b.Read32(machine.Token, machine.PC)
					log.WithFields(logrus.Fields{
						"pc":       machine.PC,
						"word":     word,
						"mnemonic": disasm.Format(word),
						"retired":  machine.Retired,
					}).Debug("rv32vm: step")
				}
				result := machine.Run(1)
				if result.IsTrap {
					log.WithFields(logrus.Fields{
						"kind":   result.Trap.Kind,
						"value":  result.Trap.Value,
						"mepc":   machine.Mepc,
						"mcause": machine.Mcause,
						"mtval":  machine.Mtval,
					}).Info("rv32vm: trapped")
					return nil
				}
			}
			log.Info("rv32vm: instruction budget exhausted")
			return nil
		},
	}
	cmd.Flags().StringVarP(&imagePath, "image", "f", "", "hex memory image to run")
	cmd.Flags().Uint64Var(&budget, "budget", 0, "instruction budget (0 = use config or default)")
	cmd.Flags().Uint32Var(&entry, "entry", 0, "entry-point address")
	cmd.Flags().BoolVarP(&trace, "trace", "v", false, "trace every retired instruction")
	cmd.Flags().BoolVar(&console, "console", false, "attach a memory-mapped console")
	return cmd
}
