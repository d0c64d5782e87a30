package cli

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/buildgrind/buildgrind/pkg/analyze"
	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/profileinput"
)

// app bundles what every subcommand needs: the logger, the parsed config and
// the filesystem the input and config are read from.
type app struct {
	logger *zap.Logger
	config *Config
	fs     afero.Fs
}

func makeApp() (*app, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	config, err := parseConfig(logger, fs, configPath)
	if err != nil {
		return nil, err
	}

	return &app{logger: logger, config: config, fs: fs}, nil
}

func (a *app) shutdown() {
	_ = a.logger.Sync()
}

// analyzer loads the profile from the input directory, validates it into a
// graph and wraps it in an analyzer.
func (a *app) analyzer() (*analyze.Analyzer, error) {
	records, edges, err := profileinput.Read(a.logger, a.fs, inputDir)
	if err != nil {
		return nil, err
	}

	graph, err := buildgraph.Load(records, edges)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Loaded build graph",
		zap.String("targets", humanize.Comma(int64(graph.Len()))),
		zap.String("dependencies", humanize.Comma(int64(graph.NumEdges()))),
	)

	return analyze.New(graph), nil
}

// write renders to --output, or stdout when unset. The render callback only
// runs once the destination is open, and the file is closed on every path.
func (a *app) write(render func(io.Writer) error) error {
	if outputPath == "" {
		return render(os.Stdout)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
