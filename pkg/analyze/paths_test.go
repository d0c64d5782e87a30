package analyze_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buildgrind/buildgrind/pkg/analyze"
	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/report"
)

func TestCriticalPathReference(t *testing.T) {
	env, err := referenceAnalyzer(t).CriticalPaths(1)
	require.NoError(t, err)

	payload := env.Payload.(*report.Paths)
	require.Equal(t, 1, payload.Count)

	path := payload.Paths[0]
	require.Equal(t, 2, path.Length)
	require.Equal(t, report.Duration(8*time.Second), path.Total)
	require.Equal(t, "B", path.Targets[0].Target)
	require.Equal(t, "A", path.Targets[1].Target)
	require.Equal(t, "link", path.Targets[0].Recipe)
	require.Equal(t, "37.5 %", path.Targets[0].Percent.String())
	require.Equal(t, "62.5 %", path.Targets[1].Percent.String())
}

func TestTopPathsDiamond(t *testing.T) {
	// R depends on M1 and M2, both depend on S. Two paths of equal weight;
	// the tie breaks on the lexicographic node sequence.
	an := mustAnalyzer(t,
		[]buildgraph.NodeRecord{
			node("R", "bin", "link", 7*time.Second, time.Second),
			node("M1", "src", "compile", 2*time.Second, 5*time.Second),
			node("M2", "src", "compile", 2*time.Second, 5*time.Second),
			node("S", "gen", "codegen", 0, 2*time.Second),
		},
		[]buildgraph.Edge{
			{From: "R", To: "M1"},
			{From: "R", To: "M2"},
			{From: "M1", To: "S"},
			{From: "M2", To: "S"},
		},
	)

	env, err := an.CriticalPaths(5)
	require.NoError(t, err)
	payload := env.Payload.(*report.Paths)

	// Only two distinct root-to-sink sequences exist.
	require.Equal(t, 2, payload.Count)
	require.Equal(t, report.Duration(8*time.Second), payload.Paths[0].Total)
	require.Equal(t, report.Duration(8*time.Second), payload.Paths[1].Total)
	require.Equal(t, "M1", payload.Paths[0].Targets[1].Target)
	require.Equal(t, "M2", payload.Paths[1].Targets[1].Target)
}

func TestTopPathsTruncatesToK(t *testing.T) {
	an := mustAnalyzer(t,
		[]buildgraph.NodeRecord{
			node("R", "bin", "link", 0, time.Second),
			node("M1", "src", "compile", 0, 5*time.Second),
			node("M2", "src", "compile", 0, 4*time.Second),
			node("M3", "src", "compile", 0, 3*time.Second),
		},
		[]buildgraph.Edge{
			{From: "R", To: "M1"},
			{From: "R", To: "M2"},
			{From: "R", To: "M3"},
		},
	)

	env, err := an.CriticalPaths(2)
	require.NoError(t, err)
	payload := env.Payload.(*report.Paths)

	require.Equal(t, 2, payload.Count)
	require.Equal(t, report.Duration(6*time.Second), payload.Paths[0].Total)
	require.Equal(t, report.Duration(5*time.Second), payload.Paths[1].Total)
}

func TestCriticalPathsDeterministic(t *testing.T) {
	an := referenceAnalyzer(t)

	first, err := an.CriticalPaths(3)
	require.NoError(t, err)
	second, err := an.CriticalPaths(3)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// randomDAG builds an acyclic graph on n nodes: edges only point from higher
// to lower index, so any edge subset is a DAG.
func randomDAG(rng *rand.Rand, n int) ([]buildgraph.NodeRecord, []buildgraph.Edge) {
	var records []buildgraph.NodeRecord
	var edges []buildgraph.Edge
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("n%02d", i)
		records = append(records, node(id, "src", "compile",
			time.Duration(rng.Intn(10))*time.Second,
			time.Duration(rng.Intn(10))*time.Second))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if rng.Float64() < 0.4 {
				edges = append(edges, buildgraph.Edge{
					From: fmt.Sprintf("n%02d", i),
					To:   fmt.Sprintf("n%02d", j),
				})
			}
		}
	}
	return records, edges
}

// bruteForceCritical enumerates every root-to-sink path and returns the
// maximum summed duration.
func bruteForceCritical(g *buildgraph.Graph) time.Duration {
	var walk func(id string) time.Duration
	walk = func(id string) time.Duration {
		n, _ := g.Node(id)
		deps := g.Dependencies(id)
		if len(deps) == 0 {
			return n.Duration
		}
		var best time.Duration
		for _, dep := range deps {
			if d := walk(dep); d > best {
				best = d
			}
		}
		return n.Duration + best
	}

	var best time.Duration
	for _, root := range g.Roots() {
		if d := walk(root); d > best {
			best = d
		}
	}
	return best
}

func TestCriticalPathMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		records, edges := randomDAG(rng, 2+rng.Intn(6))
		g, err := buildgraph.Load(records, edges)
		require.NoError(t, err)

		env, err := analyze.New(g).CriticalPaths(1)
		require.NoError(t, err)
		payload := env.Payload.(*report.Paths)
		require.Equal(t, 1, payload.Count)

		expected := bruteForceCritical(g)
		require.Equal(t, report.Duration(expected), payload.Paths[0].Total,
			"trial %d: nodes=%v edges=%v", trial, records, edges)

		// The reported path must itself sum to its reported total.
		var sum time.Duration
		for _, target := range payload.Paths[0].Targets {
			sum += time.Duration(target.Duration)
		}
		require.Equal(t, payload.Paths[0].Total, report.Duration(sum))
	}
}
