// Command imgfilter filters grayscale images from the command line.
//
// Usage:
//
//	imgfilter apply [flags] <in> <out>
//	imgfilter kernels
//	imgfilter info
//
// PNG and JPEG inputs are converted to gray values in [0, 1]. Raw inputs are
// little-endian float32 planes whose size is given with --raw WxH. The output
// format follows the output file extension (.png, .jpg, anything else is raw).
//
// Examples:
//
//	imgfilter apply photo.png smooth.png
//	imgfilter apply --kernel gaussian --sigma 2.5 photo.jpg blur.png
//	imgfilter apply --median 5 --border clamp scan.png clean.png
//	imgfilter apply --raw 640x480 --kernel sobel-x frame.f32 edges.f32
//	imgfilter kernels --size 5
package main

import (
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	fs      afero.Fs
	out     io.Writer
	log     *zap.Logger
	verbose bool
}

func main() {
	a := &app{fs: afero.NewOsFs(), out: os.Stdout}

	if err := a.rootCmd().Execute(); err != nil {
		if a.log == nil {
			a.log = newLogger(false)
		}

		a.log.Error("imgfilter failed", zap.Error(err))
		_ = a.log.Sync()

		os.Exit(1)
	}

	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imgfilter",
		Short:         "Filters grayscale images",
		Long:          "Filters grayscale images with linear kernels and rank filters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if a.log == nil {
				a.log = newLogger(a.verbose)
			}
		},
	}
	cmd.SetOut(a.out)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")
	cmd.AddCommand(a.applyCmd(), a.kernelsCmd(), a.infoCmd())

	return cmd
}

// newLogger returns a development logger when verbose is set and a
// production logger otherwise. Both write to stderr.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
