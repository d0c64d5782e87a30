// Package report defines the intermediate representation shared by the
// analyzer and the exporters: a key/name/date envelope around a typed
// payload. Exporters consume envelopes only and never reach back into the
// build graph.
package report

import (
	"math"
	"strconv"
	"time"
)

// Report type tags.
const (
	KeySummary   = "buildgrind.summary.build"
	KeyPaths     = "buildgrind.top.paths"
	KeyDirs      = "buildgrind.top.dirs"
	KeyRecipes   = "buildgrind.top.recipes"
	KeyCallgrind = "buildgrind.export.callgrind"
	KeyTrace     = "buildgrind.export.trace"
	KeyProfile   = "buildgrind.export.pprof"
)

// Envelope wraps a report payload with its type tag, display name and the
// build start timestamp.
type Envelope struct {
	Key  string    `yaml:"key"`
	Name string    `yaml:"name"`
	Date time.Time `yaml:"date"`

	Payload any `yaml:"-"`
}

// Duration renders as seconds with millisecond precision, e.g. "1.500 s".
type Duration time.Duration

func (d Duration) String() string {
	return strconv.FormatFloat(time.Duration(d).Seconds(), 'f', 3, 64) + " s"
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Percent renders a ratio as a percentage, e.g. "42.5 %".
type Percent float64

// NewPercent returns num/den as a Percent; a zero denominator yields 0.
func NewPercent(num, den time.Duration) Percent {
	if den == 0 {
		return 0
	}
	return Percent(100 * float64(num) / float64(den))
}

func (p Percent) String() string {
	rounded := math.Round(float64(p)*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " %"
}

func (p Percent) MarshalYAML() (any, error) {
	return p.String(), nil
}

// Summary is the payload of the build summary report.
type Summary struct {
	Total        Duration `yaml:"total"`
	CPU          Duration `yaml:"cpu"`
	Targets      int      `yaml:"targets"`
	Dependencies int      `yaml:"dependencies"`
	Failures     int      `yaml:"failures"`
	CriticalPath Duration `yaml:"critical_path"`
	Parallelism  float64  `yaml:"parallelism"`
}

// PathTarget is a single node on a reported dependency path.
type PathTarget struct {
	Target   string   `yaml:"target"`
	Recipe   string   `yaml:"recipe"`
	Dir      string   `yaml:"dir"`
	Duration Duration `yaml:"duration"`
	Percent  Percent  `yaml:"percent"`
}

// Path is one root-to-sink path with its cumulative duration.
type Path struct {
	Length  int          `yaml:"length"`
	Total   Duration     `yaml:"total"`
	Targets []PathTarget `yaml:"targets"`
}

// Paths is the payload of the top-K critical paths report.
type Paths struct {
	Count int    `yaml:"count"`
	Paths []Path `yaml:"paths"`
}

// DirectoryStat aggregates executions sharing a directory.
type DirectoryStat struct {
	Directory string   `yaml:"directory"`
	Count     int      `yaml:"count"`
	Total     Duration `yaml:"total"`
	Max       Duration `yaml:"max"`
	Failures  int      `yaml:"failures"`
}

// Directories is the payload of the per-directory aggregation report.
type Directories struct {
	Directories []DirectoryStat `yaml:"directories"`
}

// RecipeStat aggregates executions sharing a recipe id.
type RecipeStat struct {
	Recipe   string   `yaml:"recipe"`
	Count    int      `yaml:"count"`
	Total    Duration `yaml:"total"`
	Max      Duration `yaml:"max"`
	Failures int      `yaml:"failures"`
}

// Recipes is the payload of the per-recipe aggregation report.
type Recipes struct {
	Recipes []RecipeStat `yaml:"recipes"`
}
