package spec

import "go.yaml.in/yaml/v4"

// Refs returns the component names directly referenced by the operation, in
// discovery order without duplicates. Non-local references are returned
// verbatim.
func (o *Operation) Refs() []string {
	var refs []string
	seen := make(map[string]bool)
	walkRefs(o.node, func(ref string) {
		name := ref
		if key, err := ParseRef(ref); err == nil {
			name = key.Name
		}
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	})
	return refs
}

// Parameters returns the operation's parameter names prefixed by location:
// "/" for path, "?" for query, "body:" for body parameters, bare otherwise.
func (o *Operation) Parameters() []string {
	var params []string
	appendParams(mapValue(o.node, "parameters"), &params)
	return params
}

// Parameters lists the parameters every operation on the path shares, in
// the same notation as Operation.Parameters.
func (p *PathItem) Parameters() []string {
	var params []string
	appendParams(mapValue(p.node, "parameters"), &params)
	return params
}

func appendParams(node *yaml.Node, params *[]string) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return
	}
	for _, param := range node.Content {
		m := mappingOf(param)
		if m == nil {
			continue
		}
		name := scalarValue(mapValue(m, "name"))
		if name == "" {
			continue
		}
		var prefix string
		switch scalarValue(mapValue(m, "in")) {
		case "path":
			prefix = "/"
		case "query":
			prefix = "?"
		case "body":
			prefix = "body:"
		}
		*params = append(*params, prefix+name)
	}
}
