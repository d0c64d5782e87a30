package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/buildgrind/buildgrind/pkg/analyze"
	"github.com/buildgrind/buildgrind/pkg/report"
)

var (
	topPaths int

	summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Report global build statistics",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStructuredReport(func(an *analyze.Analyzer) (*report.Envelope, error) {
				return an.Summary()
			})
		},
	}

	pathsCmd = &cobra.Command{
		Use:   "paths",
		Short: "Report the heaviest dependency paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStructuredReport(func(an *analyze.Analyzer) (*report.Envelope, error) {
				return an.CriticalPaths(topPaths)
			})
		},
	}

	dirsCmd = &cobra.Command{
		Use:   "dirs",
		Short: "Report per-directory aggregates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStructuredReport(func(an *analyze.Analyzer) (*report.Envelope, error) {
				return an.Directories()
			})
		},
	}

	recipesCmd = &cobra.Command{
		Use:   "recipes",
		Short: "Report per-recipe aggregates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStructuredReport(func(an *analyze.Analyzer) (*report.Envelope, error) {
				return an.Recipes()
			})
		},
	}
)

func runStructuredReport(op func(*analyze.Analyzer) (*report.Envelope, error)) error {
	app, err := makeApp()
	if err != nil {
		return err
	}
	defer app.shutdown()

	if topPaths == 0 {
		topPaths = app.config.TopPaths
	}

	an, err := app.analyzer()
	if err != nil {
		return err
	}
	env, err := op(an)
	if err != nil {
		return err
	}

	return app.write(func(w io.Writer) error {
		return report.WriteYAML(w, env)
	})
}

func bindPathOptions(flags *pflag.FlagSet) {
	flags.IntVarP(&topPaths, "top", "k", 0, "number of paths to report (0 takes the config default)")
}

func init() {
	bindPathOptions(pathsCmd.Flags())

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(dirsCmd)
	rootCmd.AddCommand(recipesCmd)
}
