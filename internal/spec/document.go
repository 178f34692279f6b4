package spec

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"
)

// componentKinds is the vocabulary of buckets addressable through
// "#/components/<kind>/<name>".
var componentKinds = map[string]struct{}{
	"schemas":         {},
	"responses":       {},
	"parameters":      {},
	"examples":        {},
	"requestBodies":   {},
	"headers":         {},
	"securitySchemes": {},
	"links":           {},
	"callbacks":       {},
}

// operationMethods are the path-item keys that hold operations. Everything
// else at the path level (summary, description, parameters, servers,
// extensions) is shared metadata, not an operation.
var operationMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"options": {},
	"head":    {},
	"patch":   {},
	"trace":   {},
	"query":   {}, // OpenAPI 3.2
}

// Endpoint identifies a single operation by its (path, method) pair. Method
// is uppercase. operationId is deliberately not part of the identity: it is
// optional in the wild and not guaranteed unique.
type Endpoint struct {
	Path   string
	Method string
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Operation is one method on one path. The node holds the full operation
// body untouched; only the fields the UI and the closure need are lifted out.
type Operation struct {
	Endpoint    Endpoint
	Index       int // position across all operations, in document order
	Summary     string
	Description string
	Tags        []string

	node *yaml.Node
}

// PathItem is one entry under "paths", with its operations in document order.
type PathItem struct {
	Path       string
	Summary    string // path-level summary, falling back to description
	Operations []*Operation

	node *yaml.Node
}

// Components indexes the named buckets under "components". Bucket and entry
// order mirror the document.
type Components struct {
	node    *yaml.Node
	buckets *orderedmap.Map[string, *orderedmap.Map[string, *yaml.Node]]
}

// Document is a typed view over a decoded OpenAPI tree. It never owns a
// rebuilt copy of the data: every node is a pointer into the original tree,
// so unknown and extension fields round-trip untouched.
type Document struct {
	Version    string
	Paths      []*PathItem
	Components *Components

	root *yaml.Node
}

// Load builds a Document view over a decoded tree. The only shape it insists
// on is a mapping at the root; missing or oddly shaped sections simply come
// back empty.
func Load(root *yaml.Node) (*Document, error) {
	m := mappingOf(root)
	if m == nil {
		return nil, fmt.Errorf("document root is not a mapping")
	}

	doc := &Document{
		root:       m,
		Components: loadComponents(mapValue(m, "components")),
	}

	if v := mapValue(m, "openapi"); v != nil && v.Kind == yaml.ScalarNode {
		doc.Version = v.Value
	}

	index := 0
	paths := mappingOf(mapValue(m, "paths"))
	if paths != nil {
		for i := 0; i+1 < len(paths.Content); i += 2 {
			key, value := paths.Content[i], paths.Content[i+1]
			item := loadPathItem(key.Value, value, &index)
			if item != nil {
				doc.Paths = append(doc.Paths, item)
			}
		}
	}

	return doc, nil
}

func loadPathItem(path string, node *yaml.Node, index *int) *PathItem {
	m := mappingOf(node)
	if m == nil {
		return nil
	}

	item := &PathItem{Path: path, node: m}
	var description string

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		name := strings.ToLower(key.Value)

		switch name {
		case "summary":
			item.Summary = scalarValue(value)
			continue
		case "description":
			description = scalarValue(value)
			continue
		}

		if _, ok := operationMethods[name]; !ok {
			continue
		}
		op := &Operation{
			Endpoint: Endpoint{Path: path, Method: strings.ToUpper(name)},
			Index:    *index,
			node:     mappingOf(value),
		}
		*index++
		if op.node != nil {
			op.Summary = scalarValue(mapValue(op.node, "summary"))
			op.Description = scalarValue(mapValue(op.node, "description"))
			op.Tags = stringSequence(mapValue(op.node, "tags"))
		}
		item.Operations = append(item.Operations, op)
	}

	if item.Summary == "" {
		item.Summary = description
	}
	return item
}

func loadComponents(node *yaml.Node) *Components {
	c := &Components{
		node:    mappingOf(node),
		buckets: orderedmap.New[string, *orderedmap.Map[string, *yaml.Node]](),
	}
	if c.node == nil {
		return c
	}

	for i := 0; i+1 < len(c.node.Content); i += 2 {
		key, value := c.node.Content[i], c.node.Content[i+1]
		if _, ok := componentKinds[key.Value]; !ok {
			continue
		}
		bucket := orderedmap.New[string, *yaml.Node]()
		if m := mappingOf(value); m != nil {
			for j := 0; j+1 < len(m.Content); j += 2 {
				bucket.Set(m.Content[j].Value, m.Content[j+1])
			}
		}
		c.buckets.Set(key.Value, bucket)
	}

	return c
}

// Root exposes the underlying mapping node for re-encoding.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Operation looks an operation up by endpoint. The second return value
// reports presence; asking for an endpoint that does not exist is not an
// error.
func (d *Document) Operation(e Endpoint) (*Operation, bool) {
	for _, item := range d.Paths {
		if item.Path != e.Path {
			continue
		}
		for _, op := range item.Operations {
			if op.Endpoint.Method == e.Method {
				return op, true
			}
		}
	}
	return nil, false
}

// Endpoints returns all operations in document order.
func (d *Document) Endpoints() []*Operation {
	var ops []*Operation
	for _, item := range d.Paths {
		ops = append(ops, item.Operations...)
	}
	return ops
}

// Bucket returns the ordered entries for one component kind.
func (c *Components) Bucket(kind string) *orderedmap.Map[string, *yaml.Node] {
	if c == nil || c.buckets == nil {
		return nil
	}
	return c.buckets.GetOrZero(kind)
}

// Resolve dereferences a parsed reference key against the components table.
func (c *Components) Resolve(key Key) (*yaml.Node, bool) {
	bucket := c.Bucket(key.Kind)
	if bucket == nil {
		return nil, false
	}
	node := bucket.GetOrZero(key.Name)
	return node, node != nil
}

// mappingOf unwraps document nodes and aliases down to a mapping node, or
// nil when the node is not a mapping.
func mappingOf(node *yaml.Node) *yaml.Node {
	switch {
	case node == nil:
		return nil
	case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
		return mappingOf(node.Content[0])
	case node.Kind == yaml.AliasNode:
		return mappingOf(node.Alias)
	case node.Kind == yaml.MappingNode:
		return node
	}
	return nil
}

// mapValue returns the value node for a key in a mapping node.
func mapValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func stringSequence(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	var out []string
	for _, c := range node.Content {
		if c.Kind == yaml.ScalarNode {
			out = append(out, c.Value)
		}
	}
	return out
}
