package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32core/pkg/disasm"
	"github.com/bassosimone/rv32core/pkg/image"
)

func newDisasmCmd() *cobra.Command {
	var imagePath string
	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Print one disassembled line per instruction word in an image",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := loadConfig()
			if imagePath == "" {
				imagePath = cfg.Image
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
			for off := 0; off+4 <= len(data); off += 4 {
				word := binary.LittleEndian.Uint32(data[off:])
				fmt.Printf("%#08x: %s\n", off, disasm.Format(word))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&imagePath, "image", "f", "", "hex memory image to disassemble")
	return cmd
}
