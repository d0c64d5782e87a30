// Package profileinput reads the materialized build profile produced by the
// build tool's instrumentation: a JSON document with flat node records and
// dependency edge pairs. It performs no validation beyond decoding; the
// graph loader owns the structural invariants.
package profileinput

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/buildgrind/buildgrind/pkg/buildgraph"
)

// ProfileFileName is the profile file looked up inside the input directory.
const ProfileFileName = "build-profile.json"

type profileDoc struct {
	Nodes []profileNode `json:"nodes"`
	Edges []profileEdge `json:"edges"`
}

type profileNode struct {
	ID        string   `json:"id"`
	Directory string   `json:"directory"`
	Recipe    string   `json:"recipe"`
	Start     float64  `json:"start"`
	Duration  *float64 `json:"duration"`
	Status    string   `json:"status"`
}

type profileEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Read loads and decodes the profile from dir. Start and duration are
// seconds; a record without a duration is invalid timing, reported before
// the loader ever sees the graph.
func Read(logger *zap.Logger, fsys afero.Fs, dir string) ([]buildgraph.NodeRecord, []buildgraph.Edge, error) {
	path := filepath.Join(dir, ProfileFileName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read build profile: %w", err)
	}

	var doc profileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode build profile %s: %w", path, err)
	}

	records := make([]buildgraph.NodeRecord, 0, len(doc.Nodes))
	for _, node := range doc.Nodes {
		if node.Duration == nil {
			return nil, nil, &buildgraph.InvalidTimingError{NodeID: node.ID}
		}
		status := buildgraph.Status(node.Status)
		if status == "" {
			status = buildgraph.StatusSuccess
		}
		records = append(records, buildgraph.NodeRecord{
			ID:        node.ID,
			Directory: node.Directory,
			Recipe:    node.Recipe,
			Start:     time.Unix(0, int64(node.Start*float64(time.Second))).UTC(),
			Duration:  time.Duration(*node.Duration * float64(time.Second)),
			Status:    status,
		})
	}

	edges := make([]buildgraph.Edge, 0, len(doc.Edges))
	for _, edge := range doc.Edges {
		edges = append(edges, buildgraph.Edge{From: edge.From, To: edge.To})
	}

	logger.Debug("Loaded build profile",
		zap.String("path", path),
		zap.Int("nodes", len(records)),
		zap.Int("edges", len(edges)),
	)

	return records, edges, nil
}
