package analyze

import (
	"sort"
	"time"

	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/report"
)

type groupStat struct {
	key      string
	count    int
	total    time.Duration
	max      time.Duration
	failures int
}

// aggregate groups all nodes by the given key and returns the groups sorted
// by descending total duration, ties broken by key.
func (a *Analyzer) aggregate(keyOf func(*buildgraph.Node) string) []groupStat {
	groups := make(map[string]*groupStat)
	for _, node := range a.g.Nodes() {
		key := keyOf(node)
		stat := groups[key]
		if stat == nil {
			stat = &groupStat{key: key}
			groups[key] = stat
		}
		stat.count++
		stat.total += node.Duration
		if node.Duration > stat.max {
			stat.max = node.Duration
		}
		if node.Status == buildgraph.StatusFailure {
			stat.failures++
		}
	}

	stats := make([]groupStat, 0, len(groups))
	for _, stat := range groups {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].total != stats[j].total {
			return stats[i].total > stats[j].total
		}
		return stats[i].key < stats[j].key
	})
	return stats
}

// Directories reports per-directory aggregates sorted by descending total
// duration.
func (a *Analyzer) Directories() (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	payload := &report.Directories{}
	for _, stat := range a.aggregate(func(n *buildgraph.Node) string { return n.Dir }) {
		payload.Directories = append(payload.Directories, report.DirectoryStat{
			Directory: stat.key,
			Count:     stat.count,
			Total:     report.Duration(stat.total),
			Max:       report.Duration(stat.max),
			Failures:  stat.failures,
		})
	}

	return &report.Envelope{
		Key:     report.KeyDirs,
		Name:    "Top Directories",
		Date:    a.start(),
		Payload: payload,
	}, nil
}

// Recipes reports per-recipe aggregates with the same sort discipline as
// Directories.
func (a *Analyzer) Recipes() (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	payload := &report.Recipes{}
	for _, stat := range a.aggregate(func(n *buildgraph.Node) string { return n.Recipe }) {
		payload.Recipes = append(payload.Recipes, report.RecipeStat{
			Recipe:   stat.key,
			Count:    stat.count,
			Total:    report.Duration(stat.total),
			Max:      report.Duration(stat.max),
			Failures: stat.failures,
		})
	}

	return &report.Envelope{
		Key:     report.KeyRecipes,
		Name:    "Top Recipes",
		Date:    a.start(),
		Payload: payload,
	}, nil
}
