package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildgrind/buildgrind/pkg/export/callgrind"
	"github.com/buildgrind/buildgrind/pkg/export/chrometrace"
	"github.com/buildgrind/buildgrind/pkg/export/pprofile"
	"github.com/buildgrind/buildgrind/pkg/report"
)

var (
	allOutputDir string

	allCmd = &cobra.Command{
		Use:   "all",
		Short: "Write every report and export into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := makeApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			an, err := app.analyzer()
			if err != nil {
				return err
			}

			overview, err := an.GenerateOverview(cmd.Context(), app.config.TopPaths)
			if err != nil {
				return err
			}
			callgrindEnv, err := an.Callgrind(app.config.Command)
			if err != nil {
				return err
			}
			traceEnv, err := an.Trace()
			if err != nil {
				return err
			}
			profileEnv, err := an.Profile()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(allOutputDir, 0o755); err != nil {
				return err
			}

			outputs := []struct {
				name   string
				render func(io.Writer) error
			}{
				{"summary.yaml", yamlRenderer(overview.Summary)},
				{"paths.yaml", yamlRenderer(overview.Paths)},
				{"dirs.yaml", yamlRenderer(overview.Directories)},
				{"recipes.yaml", yamlRenderer(overview.Recipes)},
				{"callgrind.out", func(w io.Writer) error { return callgrind.Write(w, callgrindEnv) }},
				{"trace.json", func(w io.Writer) error { return chrometrace.Write(w, traceEnv) }},
				{"profile.pb.gz", func(w io.Writer) error { return pprofile.Write(w, profileEnv) }},
			}
			for _, output := range outputs {
				path := filepath.Join(allOutputDir, output.name)
				if err := writeFile(path, output.render); err != nil {
					return err
				}
				app.logger.Info("Wrote report", zap.String("path", path))
			}
			return nil
		},
	}
)

func yamlRenderer(env *report.Envelope) func(io.Writer) error {
	return func(w io.Writer) error {
		return report.WriteYAML(w, env)
	}
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	allCmd.Flags().StringVarP(&allOutputDir, "dir", "d", "buildgrind-reports", "directory to write reports into")

	rootCmd.AddCommand(allCmd)
}
