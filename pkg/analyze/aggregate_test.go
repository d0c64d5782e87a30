package analyze_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buildgrind/buildgrind/pkg/analyze"
	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/report"
)

func TestDirectoriesReference(t *testing.T) {
	env, err := referenceAnalyzer(t).Directories()
	require.NoError(t, err)

	payload := env.Payload.(*report.Directories)
	require.Len(t, payload.Directories, 1)

	src := payload.Directories[0]
	require.Equal(t, "src", src.Directory)
	require.Equal(t, 2, src.Count)
	require.Equal(t, report.Duration(8*time.Second), src.Total)
	require.Equal(t, report.Duration(5*time.Second), src.Max)
	require.Equal(t, 0, src.Failures)
}

func TestRecipesReference(t *testing.T) {
	env, err := referenceAnalyzer(t).Recipes()
	require.NoError(t, err)

	payload := env.Payload.(*report.Recipes)
	require.Len(t, payload.Recipes, 2)

	// compile(5s) sorts before link(3s) on total duration.
	require.Equal(t, "compile", payload.Recipes[0].Recipe)
	require.Equal(t, report.Duration(5*time.Second), payload.Recipes[0].Total)
	require.Equal(t, "link", payload.Recipes[1].Recipe)
	require.Equal(t, report.Duration(3*time.Second), payload.Recipes[1].Total)
}

func TestAggregateSortTies(t *testing.T) {
	an := mustAnalyzer(t,
		[]buildgraph.NodeRecord{
			node("x", "zlib", "compile", 0, time.Second),
			node("y", "alib", "compile", 0, time.Second),
		},
		nil,
	)

	env, err := an.Directories()
	require.NoError(t, err)
	payload := env.Payload.(*report.Directories)

	require.Equal(t, "alib", payload.Directories[0].Directory)
	require.Equal(t, "zlib", payload.Directories[1].Directory)
}

func TestAggregateConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	records, edges := randomDAG(rng, 8)
	g, err := buildgraph.Load(records, edges)
	require.NoError(t, err)

	var cpu time.Duration
	for _, n := range g.Nodes() {
		cpu += n.Duration
	}

	an := analyze.New(g)

	dirs, err := an.Directories()
	require.NoError(t, err)
	var dirTotal time.Duration
	for _, stat := range dirs.Payload.(*report.Directories).Directories {
		dirTotal += time.Duration(stat.Total)
	}
	require.Equal(t, cpu, dirTotal)

	recipes, err := an.Recipes()
	require.NoError(t, err)
	var recipeTotal time.Duration
	for _, stat := range recipes.Payload.(*report.Recipes).Recipes {
		recipeTotal += time.Duration(stat.Total)
	}
	require.Equal(t, cpu, recipeTotal)
}

func TestAggregateCountsFailures(t *testing.T) {
	records := []buildgraph.NodeRecord{
		node("a", "src", "compile", 0, time.Second),
		node("b", "src", "compile", 0, 2*time.Second),
	}
	records[0].Status = buildgraph.StatusFailure

	env, err := mustAnalyzer(t, records, nil).Directories()
	require.NoError(t, err)
	require.Equal(t, 1, env.Payload.(*report.Directories).Directories[0].Failures)
}
