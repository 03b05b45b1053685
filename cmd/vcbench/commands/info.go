package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	vc "github.com/LynnColeArt/visioncore"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device information",
	Long: `Display the emulated device the Device target runs on: worker pool,
memory pool limits, row pitch alignment and detected CPU features.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := vc.DefaultContext()
	dev := ctx.Device()
	cfg := ctx.Config()

	fmt.Fprintln(out, "VisionCore Device Information")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Version:          %s\n", vc.Version())
	fmt.Fprintf(out, "Device:           %s\n", dev.Name)
	fmt.Fprintf(out, "Platform:         %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "CPU cores:        %d\n", dev.NumCores)
	fmt.Fprintf(out, "Workers:          %d\n", dev.MaxThreads)
	fmt.Fprintf(out, "Block size:       %d\n", cfg.Device.BlockSize)
	fmt.Fprintf(out, "Grid multiplier:  %d\n", cfg.Device.GridMultiplier)
	fmt.Fprintf(out, "Pitch alignment:  %d bytes\n", dev.PitchAlignment)
	fmt.Fprintf(out, "Memory limit:     %.2f GB\n", float64(dev.TotalMem)/(1<<30))

	allocated, peak := ctx.MemoryPool().GetStats()
	fmt.Fprintf(out, "Pool allocated:   %d bytes (peak %d)\n", allocated, peak)

	f := vc.GetCPUFeatures()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CPU features:")
	for _, feat := range []struct {
		name string
		has  bool
	}{
		{"SSE4", f.HasSSE4}, {"AVX", f.HasAVX}, {"AVX2", f.HasAVX2},
		{"AVX512F", f.HasAVX512F}, {"FMA", f.HasFMA}, {"NEON", f.HasNEON}, {"SVE", f.HasSVE},
	} {
		mark := "-"
		if feat.has {
			mark = "+"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, feat.name)
	}
	return nil
}
