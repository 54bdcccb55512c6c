package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/tangzhangming/hwgen/internal/jit"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

func newTableCommand() *cobra.Command {
	var isaName string
	var category string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the supported hardware intrinsics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.OutOrStdout(), isaName, category)
		},
	}

	cmd.Flags().StringVar(&isaName, "isa", "", "only list intrinsics of this instruction set")
	cmd.Flags().StringVar(&category, "category", "", "only list intrinsics of this category")
	return cmd
}

func runTable(w io.Writer, isaName, category string) error {
	infos := jit.Intrinsics()

	if isaName != "" {
		isa, err := jit.ParseISA(isaName)
		if err != nil {
			return err
		}
		infos = lo.Filter(infos, func(info jit.IntrinsicInfo, _ int) bool {
			return info.ISA == isa
		})
	}
	if category != "" {
		infos = lo.Filter(infos, func(info jit.IntrinsicInfo, _ int) bool {
			return strings.EqualFold(info.Category.String(), category)
		})
	}
	if len(infos) == 0 {
		return fmt.Errorf("no intrinsics match")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tARGS\tSIZE\tFLAGS\tTYPES")
	for _, info := range infos {
		size := "-"
		if info.SIMDSize != 0 {
			size = fmt.Sprint(info.SIMDSize)
		}
		typeNames := lo.Map(info.Types, func(t types.VarType, _ int) string {
			return t.String()
		})
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			info.Name, info.Category, info.NumArgs, size,
			lo.Ternary(info.Flags == 0, "-", info.Flags.String()),
			strings.Join(typeNames, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := lo.CountValuesBy(infos, func(info jit.IntrinsicInfo) jit.ISA {
		return info.ISA
	})
	isas := lo.Filter(jit.AllISAs(), func(isa jit.ISA, _ int) bool {
		return counts[isa] > 0
	})
	summary := lo.Map(isas, func(isa jit.ISA, _ int) string {
		return fmt.Sprintf("%s=%d", isa, counts[isa])
	})
	fmt.Fprintf(w, "\n%d intrinsics (%s)\n", len(infos), strings.Join(summary, ", "))
	return nil
}
