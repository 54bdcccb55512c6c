package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/tangzhangming/hwgen/internal/config"
)

func newFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Show host ARM64 features and the instruction sets \"auto\" enables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(cmd.OutOrStdout())
		},
	}
}

func runFeatures(w io.Writer) error {
	fmt.Fprintf(w, "host: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if runtime.GOARCH == "arm64" {
		features := []struct {
			name string
			has  bool
		}{
			{"fp", cpu.ARM64.HasFP},
			{"asimd", cpu.ARM64.HasASIMD},
			{"crc32", cpu.ARM64.HasCRC32},
			{"atomics", cpu.ARM64.HasATOMICS},
			{"asimdrdm", cpu.ARM64.HasASIMDRDM},
			{"asimddp", cpu.ARM64.HasASIMDDP},
			{"sve", cpu.ARM64.HasSVE},
		}
		for _, f := range features {
			fmt.Fprintf(w, "  %-9s %t\n", f.name, f.has)
		}
	} else {
		fmt.Fprintln(w, "  not an arm64 host; \"auto\" enables the baseline instruction sets")
	}

	fmt.Fprintln(w, "auto:")
	for _, isa := range config.HostISAs() {
		fmt.Fprintf(w, "  %s\n", isa)
	}
	return nil
}
