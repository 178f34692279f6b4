// Package codec decodes and encodes OpenAPI documents in the two supported
// serialization formats. Documents are held as yaml node trees, which keep
// key order for both formats (YAML is a superset of JSON on the way in).
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks a format from the file extension, falling back to a
// content sniff when the extension is unknown.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat validates a user-supplied format name. Empty means "decide
// from the destination".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format: %s (valid: yaml, json)", s)
}

// Decode parses document bytes into a node tree.
func Decode(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &root, nil
}

// Encode serializes a node tree in the requested format, preserving key
// order.
func Encode(root *yaml.Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := writeJSON(&buf, root, ""); err != nil {
			return nil, fmt.Errorf("encoding document: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return nil, fmt.Errorf("encoding document: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding document: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// writeJSON renders a node tree as pretty-printed JSON. encoding/json cannot
// be used for containers directly because Go maps would lose key order, so
// the containers are written by hand and only scalars go through the
// marshaler.
func writeJSON(buf *bytes.Buffer, node *yaml.Node, indent string) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, node.Content[0], indent)

	case yaml.AliasNode:
		return writeJSON(buf, node.Alias, indent)

	case yaml.MappingNode:
		if len(node.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		inner := indent + "  "
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(": ")
			if err := writeJSON(buf, node.Content[i+1], inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "}")
		return nil

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := indent + "  "
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "]")
		return nil

	case yaml.ScalarNode:
		return writeJSONScalar(buf, node)
	}

	return fmt.Errorf("unsupported node kind: %d", node.Kind)
}

func writeJSONScalar(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		// YAML also resolves True/TRUE here; normalize the spelling.
		var v bool
		if err := node.Decode(&v); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(v))
		return nil
	case "!!int":
		// YAML integer spellings like 0x1A, 0o17 or 1_000 are not valid
		// JSON, so the value cannot be copied verbatim.
		var i int64
		if err := node.Decode(&i); err == nil {
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			buf.WriteString(strconv.FormatUint(u, 10))
			return nil
		}
		// Out of range for both; keep it as a string rather than corrupt
		// the document.
		out, err := json.Marshal(node.Value)
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil
	case "!!float":
		// Round-trip through the decoder so YAML spellings like .5 or 1e3
		// come out as valid JSON numbers.
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		out, err := json.Marshal(f)
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil
	}
	out, err := json.Marshal(node.Value)
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}
