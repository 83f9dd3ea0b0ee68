// Package cmd parses command line arguments into the engine
// configuration.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"spectro/internal/build"
	"spectro/internal/config"
)

// ParseArgs builds the runtime configuration from defaults, an
// optional YAML file and command line flags, in that order.
func ParseArgs() (*config.Config, error) {
	info := build.GetInfo()

	var configPath string
	options := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:           info.Name,
		Short:         "Real-time audio spectrograph: bar spectrum and waterfall over the mic input",
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// YAML and env apply first so explicit flags win.
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*options = *loaded
			return applyFlagOverrides(cmd, options)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return options.Validate()
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio input devices",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "list"
		},
	}
	rootCmd.AddCommand(listCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to YAML config file")
	flags.IntP("device", "d", config.DefaultDeviceID,
		"Input device ID. Use 'list' to see available devices.")
	flags.Float64P("sample-rate", "s", config.DefaultSampleRate,
		"Sample rate in Hertz (Hz)")
	flags.Int("fft-size", config.DefaultFFTSize,
		"Samples per analysis block (power of 2)")
	flags.String("window", config.DefaultWindow,
		"Analysis window: hann, hamming, blackman, bartlett-hann, nuttall")
	flags.Float64P("gain", "g", config.DefaultGain,
		"Post-normalization gain (contrast control)")
	flags.Float64("low", config.DefaultLowFrequency,
		"Low bound of the visible frequency range (Hz)")
	flags.Float64("high", config.DefaultHighFrequency,
		"High bound of the visible frequency range (Hz)")
	flags.String("colors", config.DefaultColorScheme,
		"Color scheme: blue-red or black-red")
	flags.StringP("mode", "m", config.DefaultMode,
		"Display mode: bars or waterfall")
	flags.Int("history", config.DefaultHistoryDepth,
		"Waterfall history depth in frames")
	flags.Bool("serve", false,
		"Stream frames to WebSocket clients")
	flags.String("serve-addr", config.DefaultServeAddr,
		"WebSocket listen address")
	flags.BoolP("record", "r", config.DefaultRecord,
		"Record the captured audio to a WAV file")
	flags.StringP("output", "o", config.DefaultOutputFile,
		"Recording file name. Default is capture-DD-MM-YYYY-HHMMSS.wav")
	flags.BoolP("verbose", "v", config.DefaultVerbose,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if options.Record && options.OutputFile == "" {
		options.OutputFile = "capture-" +
			time.Now().UTC().Format("02-01-2006-150405") + ".wav"
	}

	return options, nil
}

// applyFlagOverrides copies only the flags the user actually set on
// top of the file/env configuration, so a flag left at its default
// never clobbers a value from the YAML file.
func applyFlagOverrides(cmd *cobra.Command, options *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("device") {
		options.DeviceID, _ = flags.GetInt("device")
	}
	if flags.Changed("sample-rate") {
		options.SampleRate, _ = flags.GetFloat64("sample-rate")
	}
	if flags.Changed("fft-size") {
		options.FFTSize, _ = flags.GetInt("fft-size")
	}
	if flags.Changed("window") {
		options.Window, _ = flags.GetString("window")
	}
	if flags.Changed("gain") {
		options.Gain, _ = flags.GetFloat64("gain")
	}
	if flags.Changed("low") {
		options.LowFrequency, _ = flags.GetFloat64("low")
	}
	if flags.Changed("high") {
		options.HighFrequency, _ = flags.GetFloat64("high")
	}
	if flags.Changed("colors") {
		options.ColorScheme, _ = flags.GetString("colors")
	}
	if flags.Changed("mode") {
		options.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("history") {
		options.HistoryDepth, _ = flags.GetInt("history")
	}
	if flags.Changed("serve") {
		options.Serve, _ = flags.GetBool("serve")
	}
	if flags.Changed("serve-addr") {
		options.ServeAddr, _ = flags.GetString("serve-addr")
	}
	if flags.Changed("record") {
		options.Record, _ = flags.GetBool("record")
	}
	if flags.Changed("output") {
		options.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("verbose") {
		options.Verbose, _ = flags.GetBool("verbose")
	}

	return nil
}
