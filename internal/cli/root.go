package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildgrind/buildgrind/pkg/must"
	"github.com/buildgrind/buildgrind/pkg/profileinput"
)

var (
	rootCmd = &cobra.Command{
		Use:           "buildgrind",
		Short:         "Analyze build dependency profiles",
		Long:          "Turn a build tool's profiling output into critical-path, directory and recipe reports, or export it for callgrind, Chrome tracing and pprof viewers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	inputDir   string
	outputPath string
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputDir, "input", "i", ".", "directory containing "+profileinput.ProfileFileName)
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output path (default stdout)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to buildgrind config")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (`debug`, `info`, `warn`, `error`)")

	must.Must(rootCmd.MarkPersistentFlagDirname("input"))
	must.Must(rootCmd.MarkPersistentFlagFilename("output"))
	must.Must(rootCmd.MarkPersistentFlagFilename("config"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
