package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphmig/internal/legacy"
)

func strPtr(s string) *string { return &s }

func linear(segments ...string) legacy.PerfometerSpec {
	total := legacy.IntValue(100)
	return legacy.PerfometerSpec{Type: legacy.PerfometerLinear, Segments: segments, Total: &total}
}

func graph(expressions ...string) legacy.GraphTemplate {
	g := legacy.GraphTemplate{Title: strPtr("Graph"), HasMetrics: true}
	for _, e := range expressions {
		g.Metrics = append(g.Metrics, legacy.GraphMetric{Expression: e, LineStyle: "line"})
	}
	return g
}

func graphs(entries ...any) *legacy.Ordered[legacy.GraphTemplate] {
	o := legacy.NewOrdered[legacy.GraphTemplate]()
	for i := 0; i+1 < len(entries); i += 2 {
		o.Set(entries[i].(string), entries[i+1].(legacy.GraphTemplate))
	}
	return o
}

func TestFindConnected_Transitive(t *testing.T) {
	ix := Resolve(
		[]legacy.PerfometerSpec{linear("a", "b")},
		graphs("G", graph("b,c,+")),
	)

	for _, seed := range []string{"a", "b", "c"} {
		t.Run(seed, func(t *testing.T) {
			assert.Equal(t, []string{"a", "b", "c"}, ix.FindConnected(seed))
		})
	}
}

func TestFindConnected_Cycles(t *testing.T) {
	ix := Resolve(
		[]legacy.PerfometerSpec{linear("a", "b"), linear("b", "c"), linear("c", "a")},
		graphs("G", graph("c,d,-")),
	)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ix.FindConnected("d"))
}

func TestFindConnected_Unreferenced(t *testing.T) {
	ix := Resolve(nil, graphs())
	assert.Equal(t, []string{"lonely"}, ix.FindConnected("lonely"))
}

func TestComponents(t *testing.T) {
	ix := Resolve(
		[]legacy.PerfometerSpec{linear("a", "b"), linear("x")},
		graphs("G1", graph("b,c,+"), "G2", graph("y", "z")),
	)

	components := ix.Components([]string{"z", "c", "a", "lonely"})

	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"lonely"},
		{"y", "z"},
	}, components)
}

func TestComponents_NoMetricTwice(t *testing.T) {
	ix := Resolve([]legacy.PerfometerSpec{linear("a", "b")}, graphs())

	components := ix.Components([]string{"a", "b", "a"})
	require.Len(t, components, 1)
	assert.Equal(t, []string{"a", "b"}, components[0])
}

func TestCollectPerfometer(t *testing.T) {
	total := legacy.StringValue("size")
	p := legacy.PerfometerSpec{
		Type:     legacy.PerfometerLinear,
		Segments: []string{"used", "reserved(%)"},
		Total:    &total,
		Label:    []string{"used_pct", "%"},
	}
	checked := CollectPerfometer(p)
	assert.True(t, checked.Parseable)
	assert.Equal(t, []string{"reserved", "size", "used", "used_pct"}, checked.Sorted())

	p.Condition = strPtr("used,size,<")
	checked = CollectPerfometer(p)
	assert.False(t, checked.Parseable)

	half := legacy.FloatValue(4)
	stacked := legacy.PerfometerSpec{
		Type: legacy.PerfometerStacked,
		Perfometers: []legacy.PerfometerSpec{
			linear("in,MAX"),
			{Type: legacy.PerfometerLogarithmic, Metric: "out", HalfValue: &half},
		},
	}
	checked = CollectPerfometer(stacked)
	assert.False(t, checked.Parseable)
	assert.Equal(t, []string{"in", "out"}, checked.Sorted())
}

func TestCollectGraph(t *testing.T) {
	g := graph("read", "write,-1,*")
	g.Scalars = []legacy.Scalar{{Expression: "read:warn"}, {Expression: "write:crit", Title: "Critical"}}
	g.Range = &legacy.Range{Lower: legacy.IntValue(0), Upper: legacy.StringValue("limit:max")}
	g.OptionalMetrics = []string{"opt"}
	g.ConflictingMetrics = []string{"conflict"}

	checked := CollectGraph(g)
	assert.True(t, checked.Parseable)
	assert.Equal(t, []string{"conflict", "limit", "opt", "read", "write"}, checked.Sorted())
}

func TestMaterialize(t *testing.T) {
	corpus := legacy.NewCorpus()
	corpus.MetricInfo.Set("a", legacy.MetricInfo{Title: "A", Color: "#ff0000"})
	corpus.MetricInfo.Set("b", legacy.MetricInfo{Title: "B", Color: "#00ff00"})
	corpus.Perfometers = []legacy.PerfometerSpec{linear("a", "b"), linear("b")}
	corpus.Graphs = graphs("G", graph("a,b,MIN"))

	ix := Resolve(corpus.Perfometers, corpus.Graphs)
	all := ix.Materialize(ix.Components([]string{"a"}), corpus)

	require.Len(t, all, 1)
	c := all[0]
	assert.Equal(t, []string{"a", "b"}, c.Metrics.Keys())
	assert.Empty(t, c.Unresolved)

	require.Len(t, c.Perfometers, 2, "perfometer 0 is referenced by a and b but listed once")
	assert.Equal(t, 0, c.Perfometers[0].Index)
	assert.Equal(t, 1, c.Perfometers[1].Index)
	assert.True(t, c.Perfometers[0].Parseable)

	require.Len(t, c.Graphs, 1)
	assert.Equal(t, "G", c.Graphs[0].ID)
	assert.False(t, c.Graphs[0].Parseable)
}

func TestMaterialize_Unresolved(t *testing.T) {
	corpus := legacy.NewCorpus()
	corpus.MetricInfo.Set("a", legacy.MetricInfo{Title: "A"})
	corpus.Perfometers = []legacy.PerfometerSpec{linear("a", "ghost")}

	ix := Resolve(corpus.Perfometers, corpus.Graphs)
	all := ix.Materialize(ix.Components([]string{"a"}), corpus)

	require.Len(t, all, 1)
	assert.Equal(t, []string{"ghost"}, all[0].Unresolved)

	metrics, perfometers, _, unresolved := Merge(all)
	assert.Equal(t, []string{"a"}, metrics.Keys())
	assert.Len(t, perfometers, 1)
	assert.Equal(t, []string{"ghost"}, unresolved)
}

func TestIndex_MetricNames(t *testing.T) {
	ix := Resolve(
		[]legacy.PerfometerSpec{linear("mem_used", "swap_used")},
		graphs("mem", graph("mem_used,mem_total,/", "mem_free")),
	)
	assert.Equal(t, []string{"mem_free", "mem_total", "mem_used", "swap_used"}, ix.MetricNames())
	assert.Empty(t, Resolve(nil, graphs()).MetricNames())
}
