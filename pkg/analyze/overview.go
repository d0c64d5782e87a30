package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/buildgrind/buildgrind/pkg/report"
)

// Overview bundles the four structured reports of one build.
type Overview struct {
	Summary     *report.Envelope
	Paths       *report.Envelope
	Directories *report.Envelope
	Recipes     *report.Envelope
}

// GenerateOverview computes all structured reports concurrently. The graph
// is read-only after load and each report writes its own envelope, so the
// fan-out is safe.
func (a *Analyzer) GenerateOverview(ctx context.Context, topK int) (*Overview, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	var overview Overview
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		overview.Summary, err = a.Summary()
		return err
	})
	eg.Go(func() error {
		var err error
		overview.Paths, err = a.CriticalPaths(topK)
		return err
	})
	eg.Go(func() error {
		var err error
		overview.Directories, err = a.Directories()
		return err
	})
	eg.Go(func() error {
		var err error
		overview.Recipes, err = a.Recipes()
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}
