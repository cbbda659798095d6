package backup

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// Validate checks a raw backup document against the CUE schema. It returns
// a descriptive error for shape violations (unknown power categories,
// out-of-range levels, relationships without a type) before anything
// reaches the store. Nameless records pass validation; import skips and
// counts them per record instead of rejecting the whole document.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile backup schema: %w", err)
	}
	docSchema := schema.LookupPath(cue.ParsePath("#Document"))
	if err := docSchema.Err(); err != nil {
		return fmt.Errorf("lookup document schema: %w", err)
	}

	expr, err := cuejson.Extract("backup.json", data)
	if err != nil {
		return fmt.Errorf("parse backup document: %w", err)
	}
	value := ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return fmt.Errorf("build backup document: %w", err)
	}

	unified := docSchema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid backup document: %w", err)
	}
	return nil
}

// Decode validates and unmarshals a raw backup document.
func Decode(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode backup document: %w", err)
	}
	return &doc, nil
}

// Encode serializes a document to the canonical indented JSON form.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup document: %w", err)
	}
	return data, nil
}
