package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	vc "github.com/LynnColeArt/visioncore"
	"github.com/LynnColeArt/visioncore/imgutils"
	"github.com/LynnColeArt/visioncore/internal/logging"
)

var (
	benchSizes      []string
	benchIterations int
	benchLogDir     string
	benchKernels    []string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time kernels on both targets",
	Long: `Time a set of kernels on the Host and Device targets for every
requested image size. Results are printed as a summary and, unless
--log-dir is empty, written to a JSON session file.`,
	RunE: runBench,
}

var summaryCmd = &cobra.Command{
	Use:   "summary <session.json>",
	Short: "Print the summary of a benchmark session file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := vc.LoadBenchmarkResults(args[0])
		if err != nil {
			return err
		}
		vc.WriteBenchmarkSummary(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	benchCmd.Flags().StringSliceVar(&benchSizes, "sizes", []string{"640x480", "1920x1080"}, "image sizes as WIDTHxHEIGHT")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 20, "iterations per kernel and size")
	benchCmd.Flags().StringVar(&benchLogDir, "log-dir", "benchmark_logs", "directory for JSON session files (empty to disable)")
	benchCmd.Flags().StringSliceVar(&benchKernels, "kernels", nil, "kernels to run (default all)")
	benchCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(benchCmd)
}

// benchKernel runs one kernel iteration over a prepared image pair
type benchKernel[TG vc.Target] func(in, out vc.Buffer2DView[float32, TG]) error

func kernelsFor[TG vc.Target]() map[string]benchKernel[TG] {
	return map[string]benchKernel[TG]{
		"fill": func(in, out vc.Buffer2DView[float32, TG]) error {
			imgutils.FillBuffer(out, 0.5)
			return nil
		},
		"rescale": func(in, out vc.Buffer2DView[float32, TG]) error {
			return imgutils.RescaleBuffer(in, out, 0.5, 0.25, 0, 1)
		},
		"threshold": func(in, out vc.Buffer2DView[float32, TG]) error {
			return imgutils.ThresholdBuffer(in, out, 0.5, 0, 1)
		},
		"flip-x": imgutils.FlipXBuffer[float32, TG],
		"flip-y": imgutils.FlipYBuffer[float32, TG],
		"sum": func(in, out vc.Buffer2DView[float32, TG]) error {
			imgutils.CalcBufferSum(in)
			return nil
		},
		"min-max": func(in, out vc.Buffer2DView[float32, TG]) error {
			imgutils.CalcBufferMin(in)
			imgutils.CalcBufferMax(in)
			return nil
		},
		"downsample-half": func(in, out vc.Buffer2DView[float32, TG]) error {
			half, err := out.SubView(0, 0, in.Width()/2, in.Height()/2)
			if err != nil {
				return err
			}
			return imgutils.DownsampleHalf(in, half)
		},
		"subtract-l2": func(in, out vc.Buffer2DView[float32, TG]) error {
			return imgutils.BufferSubtractL2(in, out, out)
		},
	}
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return width, height, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	logger, err := vc.NewBenchmarkLogger(benchLogDir, "vcbench")
	if err != nil {
		return err
	}

	for _, s := range benchSizes {
		width, height, err := parseSize(s)
		if err != nil {
			return err
		}
		benchTarget[vc.Host](logger, width, height)
		benchTarget[vc.Device](logger, width, height)
	}

	vc.WriteBenchmarkSummary(cmd.OutOrStdout(), logger.Results())
	if f := logger.SessionFile(); f != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "results written to %s\n", f)
	}
	return nil
}

func selected(name string) bool {
	if len(benchKernels) == 0 {
		return true
	}
	for _, k := range benchKernels {
		if k == name {
			return true
		}
	}
	return false
}

func benchTarget[TG vc.Target](logger *vc.BenchmarkLogger, width, height int) {
	kind := vc.KindOf[TG]()
	in, err := randomImage[TG](width, height)
	if err != nil {
		logger.LogFail("alloc", kind, width, height, err)
		return
	}
	defer in.Destroy()
	imgutils.ClampBuffer(in.View(), 0, 1)

	out, err := vc.NewBuffer2D[float32, TG](width, height)
	if err != nil {
		logger.LogFail("alloc", kind, width, height, err)
		return
	}
	defer out.Destroy()

	for name, kernel := range kernelsFor[TG]() {
		if !selected(name) {
			continue
		}

		// warm up, also surfaces precondition errors before timing
		if err := kernel(in.View(), out.View()); err != nil {
			logger.LogFail(name, kind, width, height, err)
			continue
		}

		var runErr error
		pc := vc.MeasureKernel(func() {
			for i := 0; i < benchIterations && runErr == nil; i++ {
				runErr = kernel(in.View(), out.View())
			}
		})
		if runErr != nil {
			logger.LogFail(name, kind, width, height, runErr)
			continue
		}
		logging.WithField("kernel", name).Debugf("%s %dx%d: %s", kind, width, height, pc)
		logger.LogPass(name, kind, width, height, benchIterations, pc)
	}
}
