package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/filter"
	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/img/window"
)

var errConflictingFilters = errors.New("choose at most one of --kernel, --median, --min and --max")

type applyFlags struct {
	kernel  string
	size    int
	sigma   float64
	cutoff  float64
	window  string
	median  int
	minimum int
	maximum int
	border  string
	value   float32
	method  string
	serial  bool
	workers int
	raw     string
}

// `imgfilter apply` command
func (a *app) applyCmd() *cobra.Command {
	var f applyFlags

	def := kernel.DefaultParams()

	cmd := &cobra.Command{
		Use:   "apply [flags] <in> <out>",
		Short: "Filters an image file",
		Long: "Filters an image file. Without a filter flag the image is smoothed " +
			"with the 3x3 binomial kernel.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runApply(f, args[0], args[1])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.kernel, "kernel", "k", "", "named kernel (see `imgfilter kernels`)")
	fl.IntVar(&f.size, "size", def.Size, "kernel size for box, binomial, window and lowpass")
	fl.Float64Var(&f.sigma, "sigma", def.Sigma, "gaussian standard deviation in pixels")
	fl.Float64Var(&f.cutoff, "cutoff", def.Cutoff, "lowpass cutoff in cycles per pixel")
	fl.StringVar(&f.window, "window", def.Window.String(), "taper for window and lowpass kernels")
	fl.IntVar(&f.median, "median", 0, "median filter window size (odd)")
	fl.IntVar(&f.minimum, "min", 0, "minimum filter window size (odd)")
	fl.IntVar(&f.maximum, "max", 0, "maximum filter window size (odd)")
	fl.StringVarP(&f.border, "border", "b", plane.BorderMirror.String(), "border mode: mirror, clamp, wrap or constant")
	fl.Float32Var(&f.value, "value", 0, "fill value for the constant border")
	fl.StringVarP(&f.method, "method", "m", conv.MethodAuto.String(), "correlation engine: auto, direct, separable or fft")
	fl.BoolVar(&f.serial, "serial", false, "run on a single goroutine")
	fl.IntVarP(&f.workers, "workers", "w", 0, "worker goroutines (0 = GOMAXPROCS)")
	fl.StringVar(&f.raw, "raw", "", "read the input as raw float32 of size WxH")

	return cmd
}

func (a *app) runApply(f applyFlags, in, out string) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	img, err := readImage(a.fs, in, f.raw)
	if err != nil {
		return err
	}

	a.log.Debug("loaded image",
		zap.String("path", in),
		zap.Int("width", img.width),
		zap.Int("height", img.height))

	start := time.Now()
	if err := filter.Filter(img.width, img.height, img.data, img.data, opts...); err != nil {
		return err
	}

	a.log.Info("filtered",
		zap.String("in", in),
		zap.String("out", out),
		zap.String("filter", f.describe()),
		zap.Duration("elapsed", time.Since(start)))

	return writeImage(a.fs, out, img)
}

func (f applyFlags) options() ([]filter.Option, error) {
	var opts []filter.Option

	border, err := plane.ParseBorder(f.border)
	if err != nil {
		return nil, err
	}

	method, err := conv.ParseMethod(f.method)
	if err != nil {
		return nil, err
	}

	opts = append(opts, filter.WithBorder(border), filter.WithBorderValue(f.value), filter.WithMethod(method))

	switch {
	case f.serial:
		opts = append(opts, filter.WithSerial())
	case f.workers > 0:
		opts = append(opts, filter.WithWorkers(f.workers))
	}

	chosen := 0
	for _, set := range []bool{f.kernel != "", f.median != 0, f.minimum != 0, f.maximum != 0} {
		if set {
			chosen++
		}
	}

	if chosen > 1 {
		return nil, errConflictingFilters
	}

	switch {
	case f.median != 0:
		opts = append(opts, filter.WithMedian(f.median))
	case f.minimum != 0:
		opts = append(opts, filter.WithMinimum(f.minimum))
	case f.maximum != 0:
		opts = append(opts, filter.WithMaximum(f.maximum))
	case f.kernel != "":
		k, err := f.buildKernel()
		if err != nil {
			return nil, err
		}

		opts = append(opts, filter.WithKernel(k))
	}

	return opts, nil
}

func (f applyFlags) buildKernel() (*kernel.Kernel, error) {
	wt, err := window.ParseType(f.window)
	if err != nil {
		return nil, err
	}

	return kernel.Lookup(f.kernel, kernel.Params{
		Size:   f.size,
		Sigma:  f.sigma,
		Cutoff: f.cutoff,
		Window: wt,
	})
}

func (f applyFlags) describe() string {
	switch {
	case f.median != 0:
		return fmt.Sprintf("median %d", f.median)
	case f.minimum != 0:
		return fmt.Sprintf("minimum %d", f.minimum)
	case f.maximum != 0:
		return fmt.Sprintf("maximum %d", f.maximum)
	case f.kernel != "":
		return f.kernel
	default:
		return "binomial 3x3"
	}
}
