package commands

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	vc "github.com/LynnColeArt/visioncore"
	"github.com/LynnColeArt/visioncore/imgutils"
	"github.com/LynnColeArt/visioncore/internal/logging"
)

var verifySeed int64

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that host and device targets agree",
	Long: `Run a fixed set of kernel scenarios on the Host and Device targets.
Each result is compared with its expected value, when one is known, and the
two targets are compared with each other.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Int64Var(&verifySeed, "seed", 1, "seed for generated images")
	rootCmd.AddCommand(verifyCmd)
}

// scenario produces a flat float32 result on one target
type scenario func() ([]float32, error)

type verifyCase struct {
	name     string
	host     scenario
	device   scenario
	expected []float32 // nil when only parity is checked
	tol      vc.ToleranceConfig
}

func verifyCases() []verifyCase {
	return []verifyCase{
		{"fill/mean/sum", fillMeanSum[vc.Host], fillMeanSum[vc.Device], []float32{2, 32}, vc.ExactTolerance()},
		{"downsample-half", downsampleOnes[vc.Host], downsampleOnes[vc.Device], []float32{1, 1, 1, 1}, vc.ExactTolerance()},
		{"clamp", clampScenario[vc.Host], clampScenario[vc.Device], []float32{0.2, 0.5, 0.8}, vc.ExactTolerance()},
		{"flip-x", flipScenario[vc.Host], flipScenario[vc.Device], []float32{4, 3, 2, 1, 1, 2, 3, 4}, vc.ExactTolerance()},
		{"reduce-index-sum", indexSum[vc.Host], indexSum[vc.Device], []float32{float32(indexSumN * (indexSumN - 1) / 2)}, vc.ExactTolerance()},
		{"normalize", normalizeRandom[vc.Host], normalizeRandom[vc.Device], nil, vc.DefaultTolerance()},
		{"pyramid", pyramidRandom[vc.Host], pyramidRandom[vc.Device], nil, vc.RelaxedTolerance()},
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, c := range verifyCases() {
		host, err := c.host()
		if err != nil {
			return fmt.Errorf("%s on host: %w", c.name, err)
		}
		device, err := c.device()
		if err != nil {
			return fmt.Errorf("%s on device: %w", c.name, err)
		}

		checks := []struct {
			label string
			res   vc.VerificationResult
		}{{"host/device", vc.VerifySlices(host, device, c.tol)}}
		if c.expected != nil {
			checks = append(checks, struct {
				label string
				res   vc.VerificationResult
			}{"expected/host", vc.VerifySlices(c.expected, host, c.tol)})
		}

		for _, check := range checks {
			status := "ok"
			if !check.res.IsAcceptable() {
				status = "FAIL"
				failed++
				logging.WithField("scenario", c.name).Errorf("%s mismatch:\n%s", check.label, check.res)
			}
			fmt.Fprintf(out, "%-20s %-14s %s\n", c.name, check.label, status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	fmt.Fprintln(out, "all checks passed")
	return nil
}

func fillMeanSum[TG vc.Target]() ([]float32, error) {
	buf, err := vc.NewBuffer2D[float32, TG](4, 4)
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	imgutils.FillBuffer(buf.View(), 2)
	return []float32{imgutils.CalcBufferMean(buf.View()), imgutils.CalcBufferSum(buf.View())}, nil
}

func downsampleOnes[TG vc.Target]() ([]float32, error) {
	pyr, err := vc.NewPyramid[float32, TG](2, 4, 4)
	if err != nil {
		return nil, err
	}
	defer pyr.Destroy()

	imgutils.FillBuffer(pyr.Level(0).View(), 1)
	if err := imgutils.DownsampleHalf(pyr.Level(0).View(), pyr.Level(1).View()); err != nil {
		return nil, err
	}
	return toHost(pyr.Level(1).View())
}

func clampScenario[TG vc.Target]() ([]float32, error) {
	buf, err := vc.NewBuffer1D[float32, TG](3)
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	if err := vc.Transfer1D(buf.View(), vc.NewBuffer1DView[float32, vc.Host]([]float32{-1, 0.5, 2})); err != nil {
		return nil, err
	}
	imgutils.ClampBuffer1D(buf.View(), 0.2, 0.8)
	return append([]float32(nil), buf.View().Data()...), nil
}

func flipScenario[TG vc.Target]() ([]float32, error) {
	a, err := vc.NewBuffer2D[float32, TG](4, 1)
	if err != nil {
		return nil, err
	}
	defer a.Destroy()
	b, err := vc.NewBuffer2D[float32, TG](4, 1)
	if err != nil {
		return nil, err
	}
	defer b.Destroy()

	copy(a.View().Row(0), []float32{1, 2, 3, 4})
	if err := imgutils.FlipXBuffer(a.View(), b.View()); err != nil {
		return nil, err
	}
	flipped := append([]float32(nil), b.View().Row(0)...)
	if err := imgutils.FlipXBuffer(b.View(), a.View()); err != nil {
		return nil, err
	}
	return append(flipped, a.View().Row(0)...), nil
}

const indexSumN = 1 << 16

func indexSum[TG vc.Target]() ([]float32, error) {
	sum := vc.LaunchParallelReduce[TG](indexSumN, int64(0), func(i int, acc *int64) {
		*acc += int64(i)
	}, func(a, b int64) int64 { return a + b })
	return []float32{float32(sum)}, nil
}

// randomImage fills a width x height buffer on TG from a fixed seed
func randomImage[TG vc.Target](width, height int) (*vc.Buffer2D[float32, TG], error) {
	host := make([]float32, width*height)
	rng := rand.New(rand.NewSource(verifySeed))
	for i := range host {
		host[i] = rng.Float32()*200 - 100
	}
	src, err := vc.NewBuffer2DView[float32, vc.Host](host, width, height, 0)
	if err != nil {
		return nil, err
	}

	buf, err := vc.NewBuffer2D[float32, TG](width, height)
	if err != nil {
		return nil, err
	}
	if err := vc.Transfer2D(buf.View(), src); err != nil {
		buf.Destroy()
		return nil, err
	}
	return buf, nil
}

func normalizeRandom[TG vc.Target]() ([]float32, error) {
	buf, err := randomImage[TG](257, 131)
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	if err := imgutils.NormalizeBufferInplace(buf.View()); err != nil {
		return nil, err
	}
	return toHost(buf.View())
}

func pyramidRandom[TG vc.Target]() ([]float32, error) {
	base, err := randomImage[TG](256, 192)
	if err != nil {
		return nil, err
	}
	defer base.Destroy()

	pyr, err := vc.NewPyramid[float32, TG](4, 256, 192)
	if err != nil {
		return nil, err
	}
	defer pyr.Destroy()

	if err := pyr.Level(0).View().CopyFrom(base.View()); err != nil {
		return nil, err
	}
	if err := imgutils.BuildPyramid(pyr.View()); err != nil {
		return nil, err
	}

	var flat []float32
	for i := 0; i < pyr.Levels(); i++ {
		level, err := toHost(pyr.Level(i).View())
		if err != nil {
			return nil, err
		}
		flat = append(flat, level...)
	}
	return flat, nil
}

// toHost copies a view into a dense host slice
func toHost[TG vc.Target](v vc.Buffer2DView[float32, TG]) ([]float32, error) {
	host := make([]float32, v.Area())
	dst, err := vc.NewBuffer2DView[float32, vc.Host](host, v.Width(), v.Height(), 0)
	if err != nil {
		return nil, err
	}
	if err := vc.Transfer2D(dst, v); err != nil {
		return nil, err
	}
	return host, nil
}
