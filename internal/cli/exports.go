package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/buildgrind/buildgrind/pkg/export/callgrind"
	"github.com/buildgrind/buildgrind/pkg/export/chrometrace"
	"github.com/buildgrind/buildgrind/pkg/export/pprofile"
)

var (
	callgrindCmd = &cobra.Command{
		Use:   "callgrind",
		Short: "Export the build profile in callgrind format",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := makeApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			an, err := app.analyzer()
			if err != nil {
				return err
			}
			env, err := an.Callgrind(app.config.Command)
			if err != nil {
				return err
			}
			return app.write(func(w io.Writer) error {
				return callgrind.Write(w, env)
			})
		},
	}

	chromeTracingCmd = &cobra.Command{
		Use:   "chrome-tracing",
		Short: "Export the build profile as Chrome trace events",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := makeApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			an, err := app.analyzer()
			if err != nil {
				return err
			}
			env, err := an.Trace()
			if err != nil {
				return err
			}
			return app.write(func(w io.Writer) error {
				return chrometrace.Write(w, env)
			})
		},
	}

	pprofCmd = &cobra.Command{
		Use:   "pprof",
		Short: "Export the build profile as a pprof profile",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := makeApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			an, err := app.analyzer()
			if err != nil {
				return err
			}
			env, err := an.Profile()
			if err != nil {
				return err
			}
			return app.write(func(w io.Writer) error {
				return pprofile.Write(w, env)
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(callgrindCmd)
	rootCmd.AddCommand(chromeTracingCmd)
	rootCmd.AddCommand(pprofCmd)
}
