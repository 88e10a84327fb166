package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-image/img/kernel"
)

// `imgfilter kernels` command
func (a *app) kernelsCmd() *cobra.Command {
	p := kernel.DefaultParams()

	cmd := &cobra.Command{
		Use:   "kernels",
		Short: "Lists the named kernels",
		Long:  "Lists the named kernels with their size, tap sum and separability.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tSUM\tSEPARABLE")

			for _, name := range kernel.Names() {
				k, err := kernel.Lookup(name, p)
				if err != nil {
					fmt.Fprintf(tw, "%s\t-\t-\t%v\n", name, err)
					continue
				}

				fmt.Fprintf(tw, "%s\t%dx%d\t%.4g\t%t\n", name, k.Width, k.Height, k.Sum(), k.IsSeparable())
			}

			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&p.Size, "size", p.Size, "kernel size for sized kernels")
	cmd.Flags().Float64Var(&p.Sigma, "sigma", p.Sigma, "gaussian standard deviation")

	return cmd
}
