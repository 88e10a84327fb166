package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-image/internal/cpu"
	"github.com/cwbudde/algo-image/internal/rowkernel"
)

// `imgfilter info` command
func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Prints CPU features and row kernels",
		Long:  "Prints the detected CPU features and the row kernel selected for common tap counts.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			features := cpu.DetectFeatures()

			fmt.Fprintf(w, "cpu:      %s\n", features)
			fmt.Fprintf(w, "workers:  %d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintln(w, "row kernels:")

			for _, e := range rowkernel.Global.Entries() {
				taps := "any"
				if e.Taps != 0 {
					taps = fmt.Sprint(e.Taps)
				}

				fmt.Fprintf(w, "  %-10s taps=%-4s priority=%d\n", e.Name, taps, e.Priority)
			}

			fmt.Fprintln(w, "selected:")

			for _, taps := range []int{1, 3, 5, 7, 9} {
				e := rowkernel.Global.Lookup(features, taps)
				if e == nil {
					continue
				}

				fmt.Fprintf(w, "  %d taps -> %s\n", taps, e.Name)
			}
		},
	}
}
