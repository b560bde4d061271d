// Package codec converts graphs to and from their canonical document form:
//
//	{"V": [{"_id": 1, "name": "Fred"}, ...], "E": [{"_out": 1, "_in": 2, "_label": "son"}, ...]}
//
// Vertices carry "_id" next to their properties. Edges carry "_out", "_in"
// and, when non-empty, "_label". Adjacency is never serialized.
package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/graph"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Document is the canonical form of a graph.
type Document struct {
	V []map[string]any `json:"V" yaml:"V"`
	E []map[string]any `json:"E" yaml:"E"`
}

// Encode builds the document for g, preserving insertion order.
func Encode(g *graph.Graph) Document {
	doc := Document{
		V: make([]map[string]any, 0, g.VertexCount()),
		E: make([]map[string]any, 0, g.EdgeCount()),
	}
	for _, v := range g.Vertices() {
		obj := v.Props().ToGo()
		obj["_id"] = v.ID().GoValue()
		doc.V = append(doc.V, obj)
	}
	for _, e := range g.Edges() {
		obj := e.Props().ToGo()
		obj["_out"] = e.Out().GoValue()
		obj["_in"] = e.In().GoValue()
		if e.Label() != "" {
			obj["_label"] = e.Label()
		}
		doc.E = append(doc.E, obj)
	}
	return doc
}

// Specs turns a document back into insertion specs.
func (d Document) Specs() ([]graph.VertexSpec, []graph.EdgeSpec) {
	vertices := make([]graph.VertexSpec, len(d.V))
	for i, obj := range d.V {
		vertices[i] = graph.VertexSpec{Props: obj}
	}
	edges := make([]graph.EdgeSpec, len(d.E))
	for i, obj := range d.E {
		edges[i] = graph.EdgeSpec{Props: obj}
	}
	return vertices, edges
}

// Decode rebuilds a graph from d. Every element is attempted; the returned
// graph holds everything that could be inserted and the error joins the
// failures.
func Decode(ctx context.Context, d Document, opts ...graph.Option) (*graph.Graph, error) {
	vertices, edges := d.Specs()
	g, err := graph.Load(ctx, vertices, edges, opts...)
	ctxlog.FromContext(ctx).Debug("Decoded graph document.", "vertices", g.VertexCount(), "edges", g.EdgeCount())
	return g, err
}

// Marshal renders g in canonical JSON form.
func Marshal(g *graph.Graph) ([]byte, error) {
	data, err := json.Marshal(Encode(g))
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	return data, nil
}

// Unmarshal parses canonical JSON and rebuilds the graph. Numbers keep their
// exact decimal form.
func Unmarshal(ctx context.Context, data []byte, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := parseJSON(data)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, doc, opts...)
}

// UnmarshalYAML is Unmarshal for the same document written in YAML.
func UnmarshalYAML(ctx context.Context, data []byte, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, doc, opts...)
}

// ReadFile parses a dataset file into a document, choosing the format from
// the extension: .json, .yaml or .yml.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads a dataset file and rebuilds the graph.
func LoadFile(ctx context.Context, path string, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, doc, opts...)
}

func parseJSON(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse graph json: %w", err)
	}
	return doc, nil
}

func parseYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse graph yaml: %w", err)
	}
	return doc, nil
}
