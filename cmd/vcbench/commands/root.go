package commands

import (
	"github.com/spf13/cobra"

	vc "github.com/LynnColeArt/visioncore"
	"github.com/LynnColeArt/visioncore/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vcbench",
	Short: "Inspect, verify and benchmark VisionCore targets",
	Long: `vcbench exercises the VisionCore host and device targets.

It reports the device configuration, checks that kernels produce the same
results on both targets and times kernels across image sizes.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// initRuntime loads the configuration and rebuilds the device context
// before any subcommand runs
func initRuntime(cmd *cobra.Command, args []string) error {
	cfg := vc.DefaultConfig()
	if cfgFile != "" {
		loaded, err := vc.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := vc.Init(cfg); err != nil {
		return err
	}
	logging.WithField("config", cfgFile).Debugf("runtime initialized")
	return nil
}
