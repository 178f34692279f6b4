package spec

import (
	"errors"
	"strings"
)

// Key addresses one entry in the components table.
type Key struct {
	Kind string
	Name string
}

func (k Key) String() string {
	return "#/components/" + k.Kind + "/" + k.Name
}

var (
	// ErrUnsupportedRef marks references that point outside the document
	// (other files, URLs). They cannot be resolved locally and are retained
	// as-is rather than pruned.
	ErrUnsupportedRef = errors.New("unsupported non-local reference")

	// ErrMalformedRef marks local pointers that do not follow the
	// "#/components/<kind>/<name>" grammar.
	ErrMalformedRef = errors.New("malformed reference")
)

// ParseRef parses a $ref string. Only the local component pointer grammar
// "#/components/<kind>/<name>" is recognized.
func ParseRef(s string) (Key, error) {
	if !strings.HasPrefix(s, "#/") {
		return Key{}, ErrUnsupportedRef
	}
	parts := strings.Split(s, "/")
	if len(parts) != 4 || parts[1] != "components" || parts[2] == "" || parts[3] == "" {
		return Key{}, ErrMalformedRef
	}
	return Key{Kind: parts[2], Name: parts[3]}, nil
}
