package spec

import (
	"errors"
	"strings"

	"go.yaml.in/yaml/v4"
)

type DiagnosticKind string

const (
	// DiagDangling reports a local reference whose target does not exist.
	// The reference is left in place rather than silently dropped.
	DiagDangling DiagnosticKind = "dangling"
	// DiagMalformed reports a local pointer that does not follow the
	// "#/components/<kind>/<name>" grammar.
	DiagMalformed DiagnosticKind = "malformed"
	// DiagUnsupported reports a reference into another file or URL. Those
	// are retained as-is; reachability cannot be verified for them.
	DiagUnsupported DiagnosticKind = "unsupported"
)

// Diagnostic describes one reference the closure could not resolve.
// Diagnostics accompany a best-effort result, they never abort a trim.
type Diagnostic struct {
	Kind    DiagnosticKind
	Ref     string
	Context string // e.g. "paths./pets.post" or "components.schemas.Pet"
}

// Trim produces a new document retaining exactly the selected endpoints and
// every component they transitively reference. The input document is never
// mutated; retained subtrees are shared by pointer. Trim is total: an empty
// selection yields a valid document with zero paths.
func Trim(doc *Document, selection map[Endpoint]bool) (*Document, []Diagnostic) {
	t := &trimmer{
		doc:      doc,
		visited:  make(map[Key]bool),
		reported: make(map[string]bool),
	}

	usedTags := make(map[string]bool)
	inheritsGlobalSecurity := false

	// Seed the scan from every selected operation and, once per retained
	// path, the path-level shared nodes (parameters, servers and friends).
	for _, item := range doc.Paths {
		kept := false
		for _, op := range item.Operations {
			if !selection[op.Endpoint] {
				continue
			}
			kept = true
			t.scan(op.node, "paths."+item.Path+"."+strings.ToLower(op.Endpoint.Method))
			for _, tag := range op.Tags {
				usedTags[tag] = true
			}
			if op.node == nil || mapValue(op.node, "security") == nil {
				inheritsGlobalSecurity = true
			}
		}
		if kept && item.node != nil {
			for i := 0; i+1 < len(item.node.Content); i += 2 {
				key, value := item.node.Content[i], item.node.Content[i+1]
				if _, isOp := operationMethods[strings.ToLower(key.Value)]; isOp {
					continue
				}
				t.scan(value, "paths."+item.Path)
			}
		}
	}

	t.retainSecuritySchemes(selection, inheritsGlobalSecurity)

	root := t.assemble(selection, usedTags, inheritsGlobalSecurity)
	out, err := Load(root)
	if err != nil {
		// Cannot happen: assemble always builds a mapping. Fall back to an
		// empty document rather than failing the trim.
		out = &Document{root: root, Components: loadComponents(nil)}
	}
	return out, t.diags
}

type trimmer struct {
	doc      *Document
	visited  map[Key]bool
	reported map[string]bool
	diags    []Diagnostic
}

type scanTarget struct {
	node    *yaml.Node
	context string
}

// scan walks node for references and follows resolvable ones through the
// components table. The visited set is keyed by (kind, name), so cyclic and
// self-referential schemas are expanded exactly once.
func (t *trimmer) scan(node *yaml.Node, context string) {
	queue := []scanTarget{{node: node, context: context}}
	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]

		walkRefs(target.node, func(ref string) {
			key, err := ParseRef(ref)
			switch {
			case errors.Is(err, ErrUnsupportedRef):
				t.report(DiagUnsupported, ref, target.context)
				return
			case err != nil:
				t.report(DiagMalformed, ref, target.context)
				return
			}
			if t.visited[key] {
				return
			}
			entry, ok := t.doc.Components.Resolve(key)
			if !ok {
				t.report(DiagDangling, ref, target.context)
				return
			}
			t.visited[key] = true
			queue = append(queue, scanTarget{
				node:    entry,
				context: "components." + key.Kind + "." + key.Name,
			})
		})
	}
}

func (t *trimmer) report(kind DiagnosticKind, ref, context string) {
	id := string(kind) + "|" + ref + "|" + context
	if t.reported[id] {
		return
	}
	t.reported[id] = true
	t.diags = append(t.diags, Diagnostic{Kind: kind, Ref: ref, Context: context})
}

// retainSecuritySchemes marks the security schemes named by retained
// operations, plus the document-level default when at least one retained
// operation does not override it. Scheme requirements name schemes directly
// rather than through $ref, so they need their own seeding pass.
func (t *trimmer) retainSecuritySchemes(selection map[Endpoint]bool, inheritsGlobal bool) {
	mark := func(requirements *yaml.Node) {
		if requirements == nil || requirements.Kind != yaml.SequenceNode {
			return
		}
		for _, requirement := range requirements.Content {
			m := mappingOf(requirement)
			if m == nil {
				continue
			}
			for i := 0; i+1 < len(m.Content); i += 2 {
				key := Key{Kind: "securitySchemes", Name: m.Content[i].Value}
				if t.visited[key] {
					continue
				}
				if entry, ok := t.doc.Components.Resolve(key); ok {
					t.visited[key] = true
					t.scan(entry, "components.securitySchemes."+key.Name)
				}
			}
		}
	}

	for _, op := range t.doc.Endpoints() {
		if selection[op.Endpoint] && op.node != nil {
			mark(mapValue(op.node, "security"))
		}
	}
	if inheritsGlobal {
		mark(mapValue(t.doc.root, "security"))
	}
}

// assemble rebuilds the root mapping in its original key order. Paths,
// components, tags and global security are filtered; everything else is
// passed through by pointer.
func (t *trimmer) assemble(selection map[Endpoint]bool, usedTags map[string]bool, keepGlobalSecurity bool) *yaml.Node {
	out := newMapping()
	root := t.doc.root

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "paths":
			appendPair(out, key, t.trimPaths(selection))
		case "components":
			if comps := t.trimComponents(); comps != nil {
				appendPair(out, key, comps)
			}
		case "tags":
			if tags := filterTags(value, usedTags); tags != nil {
				appendPair(out, key, tags)
			}
		case "security":
			if keepGlobalSecurity {
				appendPair(out, key, value)
			}
		default:
			appendPair(out, key, value)
		}
	}

	return out
}

// trimPaths keeps the path items containing at least one selected endpoint,
// and within each only the selected methods. Path order, method order and
// path-level metadata are preserved.
func (t *trimmer) trimPaths(selection map[Endpoint]bool) *yaml.Node {
	paths := newMapping()
	for _, item := range t.doc.Paths {
		kept := false
		for _, op := range item.Operations {
			if selection[op.Endpoint] {
				kept = true
				break
			}
		}
		if !kept || item.node == nil {
			continue
		}

		trimmed := newMapping()
		for i := 0; i+1 < len(item.node.Content); i += 2 {
			key, value := item.node.Content[i], item.node.Content[i+1]
			method := strings.ToLower(key.Value)
			if _, isOp := operationMethods[method]; isOp {
				if !selection[Endpoint{Path: item.Path, Method: strings.ToUpper(method)}] {
					continue
				}
			}
			appendPair(trimmed, key, value)
		}
		appendPair(paths, scalarNode(item.Path), trimmed)
	}
	return paths
}

// trimComponents stable-filters every kind bucket down to the visited
// entries. Non-bucket keys under components (extensions) pass through.
// Returns nil when nothing remains, so the key is dropped entirely.
func (t *trimmer) trimComponents() *yaml.Node {
	source := t.doc.Components.node
	if source == nil {
		return nil
	}

	out := newMapping()
	for i := 0; i+1 < len(source.Content); i += 2 {
		key, value := source.Content[i], source.Content[i+1]
		if _, isBucket := componentKinds[key.Value]; !isBucket {
			appendPair(out, key, value)
			continue
		}
		bucket := mappingOf(value)
		if bucket == nil {
			continue
		}
		filtered := newMapping()
		for j := 0; j+1 < len(bucket.Content); j += 2 {
			name := bucket.Content[j]
			if t.visited[Key{Kind: key.Value, Name: name.Value}] {
				appendPair(filtered, name, bucket.Content[j+1])
			}
		}
		if len(filtered.Content) > 0 {
			appendPair(out, key, filtered)
		}
	}

	if len(out.Content) == 0 {
		return nil
	}
	return out
}

func filterTags(node *yaml.Node, usedTags map[string]bool) *yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, tag := range node.Content {
		name := scalarValue(mapValue(mappingOf(tag), "name"))
		if usedTags[name] {
			out.Content = append(out.Content, tag)
		}
	}
	if len(out.Content) == 0 {
		return nil
	}
	return out
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(m *yaml.Node, key, value *yaml.Node) {
	m.Content = append(m.Content, key, value)
}
