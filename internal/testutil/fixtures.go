package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
)

// FamilyVertices are the six members of the family graph, ids 1 to 6.
var FamilyVertices = []graph.VertexSpec{
	{ID: 1, Props: map[string]any{"name": "Fred"}},
	{ID: 2, Props: map[string]any{"name": "Bob"}},
	{ID: 3, Props: map[string]any{"name": "Tom"}},
	{ID: 4, Props: map[string]any{"name": "Dick"}},
	{ID: 5, Props: map[string]any{"name": "Harry"}},
	{ID: 6, Props: map[string]any{"name": "Lucy"}},
}

// FamilyEdges link the family graph. Fred is Bob's father, Bob has three
// sons and a daughter, and the siblings point at each other.
var FamilyEdges = []graph.EdgeSpec{
	{Out: 1, In: 2, Label: "son"},
	{Out: 2, In: 3, Label: "son"},
	{Out: 2, In: 4, Label: "son"},
	{Out: 2, In: 5, Label: "son"},
	{Out: 2, In: 6, Label: "daughter"},
	{Out: 3, In: 4, Label: "brother"},
	{Out: 4, In: 5, Label: "brother"},
	{Out: 5, In: 3, Label: "brother"},
	{Out: 3, In: 5, Label: "brother"},
	{Out: 4, In: 3, Label: "brother"},
	{Out: 5, In: 4, Label: "brother"},
	{Out: 3, In: 6, Label: "sister"},
	{Out: 4, In: 6, Label: "sister"},
	{Out: 5, In: 6, Label: "sister"},
	{Out: 6, In: 3, Label: "brother"},
	{Out: 6, In: 4, Label: "brother"},
	{Out: 6, In: 5, Label: "brother"},
}

// FamilyGraph builds the family graph. Reported errors go to the returned
// collector.
func FamilyGraph(t *testing.T) (*graph.Graph, *fault.Collector) {
	t.Helper()
	c := &fault.Collector{}
	g, err := graph.Load(context.Background(), FamilyVertices, FamilyEdges, graph.WithReporter(c))
	require.NoError(t, err)
	return g, c
}

// Aesir lists the Aesir and their gender.
var Aesir = [][2]string{
	{"Auðumbla", "F"}, {"Ymir", "M"}, {"Þrúðgelmir", "M"}, {"Bergelmir", "M"},
	{"Búri", "M"}, {"Borr", "M"}, {"Bölþorn", "M"}, {"Bestla", "F"},
	{"Odin", "M"}, {"Vili", "M"}, {"Vé", "M"}, {"Hœnir", "M"},
	{"Fjörgynn", "M"}, {"Frigg", "F"}, {"Annar", "M"}, {"Jörð", "F"},
	{"Nepr", "M"}, {"Gríðr", "F"}, {"Forseti", "M"}, {"Rindr", "F"},
	{"Dellingr", "M"}, {"Nótt", "F"}, {"Nanna", "F"}, {"Baldr", "M"},
	{"Höðr", "M"}, {"Hermóðr", "M"}, {"Bragi", "M"}, {"Iðunn", "F"},
	{"Víðarr", "M"}, {"Váli", "M"}, {"Gefjon", "F"}, {"Ullr", "M"},
	{"Týr", "M"}, {"Dagr", "M"}, {"Thor", "M"}, {"Sif", "F"},
	{"Járnsaxa", "F"}, {"Nörfi", "M"}, {"Móði", "M"}, {"Þrúðr", "F"},
	{"Magni", "M"}, {"Ægir", "M"}, {"Rán", "F"}, {"Nine sisters", "F"},
	{"Heimdallr", "M"},
}

// Vanir lists the Vanir.
var Vanir = []string{
	"Alvaldi", "Þjazi", "Iði", "Gangr", "Fárbauti", "Nál", "Gymir",
	"Aurboða", "Njörðr", "Skaði", "Sigyn", "Loki", "Angrboða", "Býleistr",
	"Helblindi", "Beli", "Gerðr", "Freyr", "Freyja", "Óðr", "Vali", "Narfi",
	"Hyrrokkin", "Fenrir", "Jörmungandr", "Hel", "Fjölnir", "Hnoss",
	"Gersemi", "Hati Hróðvitnisson", "Sköll", "Mánagarmr",
}

// Parentage pairs are (parent, child).
var Parentage = [][2]string{
	{"Ymir", "Þrúðgelmir"}, {"Þrúðgelmir", "Bergelmir"}, {"Bergelmir", "Bölþorn"},
	{"Bölþorn", "Bestla"}, {"Bestla", "Odin"}, {"Bestla", "Vili"}, {"Bestla", "Vé"},
	{"Auðumbla", "Búri"}, {"Búri", "Borr"}, {"Borr", "Odin"}, {"Borr", "Vili"}, {"Borr", "Vé"},
	{"Ægir", "Nine sisters"}, {"Rán", "Nine sisters"}, {"Nine sisters", "Heimdallr"},
	{"Fjörgynn", "Frigg"}, {"Frigg", "Baldr"}, {"Odin", "Baldr"},
	{"Nepr", "Nanna"}, {"Nanna", "Forseti"}, {"Baldr", "Forseti"},
	{"Nörfi", "Nótt"}, {"Nótt", "Dagr"}, {"Nótt", "Jörð"}, {"Annar", "Jörð"},
	{"Jörð", "Thor"}, {"Odin", "Thor"}, {"Thor", "Móði"}, {"Thor", "Þrúðr"},
	{"Sif", "Móði"}, {"Sif", "Þrúðr"}, {"Thor", "Magni"}, {"Járnsaxa", "Magni"},
}

// NorseSpecs returns the Norse dataset as vertex and edge specs. Parent
// edges point from child to parent with the label "parent".
func NorseSpecs() ([]graph.VertexSpec, []graph.EdgeSpec) {
	vertices := make([]graph.VertexSpec, 0, len(Aesir)+len(Vanir))
	for _, a := range Aesir {
		gender := "male"
		if a[1] == "F" {
			gender = "female"
		}
		vertices = append(vertices, graph.VertexSpec{
			ID:    a[0],
			Props: map[string]any{"species": "Aesir", "gender": gender},
		})
	}
	for _, name := range Vanir {
		vertices = append(vertices, graph.VertexSpec{
			ID:    name,
			Props: map[string]any{"species": "Vanir"},
		})
	}

	edges := make([]graph.EdgeSpec, 0, len(Parentage))
	for _, p := range Parentage {
		edges = append(edges, graph.EdgeSpec{Out: p[1], In: p[0], Label: "parent"})
	}
	return vertices, edges
}

// NorseGraph builds the Norse dataset.
func NorseGraph(t *testing.T) (*graph.Graph, *fault.Collector) {
	t.Helper()
	c := &fault.Collector{}
	vertices, edges := NorseSpecs()
	g, err := graph.Load(context.Background(), vertices, edges, graph.WithReporter(c))
	require.NoError(t, err)
	return g, c
}

// IDs returns the ids of vs, in order.
func IDs(vs []*graph.Vertex) []graph.ID {
	out := make([]graph.ID, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

// IntIDs is shorthand for a list of integer ids.
func IntIDs(ns ...int64) []graph.ID {
	out := make([]graph.ID, len(ns))
	for i, n := range ns {
		out[i] = graph.IntID(n)
	}
	return out
}

// StringIDs is shorthand for a list of string ids.
func StringIDs(ss ...string) []graph.ID {
	out := make([]graph.ID, len(ss))
	for i, s := range ss {
		out[i] = graph.StringID(s)
	}
	return out
}
