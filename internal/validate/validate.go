// Package validate checks a trimmed document against the OpenAPI schema
// before it is written out. Input documents are never validated; only the
// output gets this guard.
package validate

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
)

// Document parses the encoded document and runs full schema validation.
func Document(data []byte) error {
	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return fmt.Errorf("parsing trimmed document: %w", err)
	}

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		return fmt.Errorf("building validator: %w", errs[0])
	}

	valid, valErrs := v.ValidateDocument()
	if valid {
		return nil
	}

	var details []string
	for _, e := range valErrs {
		details = append(details, e.Message)
	}
	return fmt.Errorf("trimmed document failed validation: %s", strings.Join(details, "; "))
}
