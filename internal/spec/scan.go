package spec

import "go.yaml.in/yaml/v4"

// walkRefs calls fn for every $ref string found anywhere under node,
// recursing through mappings and sequences at arbitrary depth. The shape of
// component bodies is open-ended (array items, oneOf/anyOf/allOf/not,
// additionalProperties, map-valued fields), so no schema is assumed.
func walkRefs(node *yaml.Node, fn func(ref string)) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range node.Content {
			walkRefs(c, fn)
		}
	case yaml.AliasNode:
		walkRefs(node.Alias, fn)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value == "$ref" && value.Kind == yaml.ScalarNode {
				fn(value.Value)
				continue
			}
			walkRefs(value, fn)
		}
	}
}
