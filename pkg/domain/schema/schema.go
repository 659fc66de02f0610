// Package schema validates generated documents against embedded JSON schemas.
package schema

import (
	_ "embed"
	"encoding/json"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

//go:embed dispatch.schema.json
var dispatchSchemaJSON []byte

var (
	manifestSchema = mustLoad("manifest", manifestSchemaJSON)
	dispatchSchema = mustLoad("dispatch", dispatchSchemaJSON)
)

func mustLoad(name string, data []byte) *openapi3.Schema {
	var s openapi3.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		panic("invalid embedded " + name + " schema: " + err.Error())
	}
	return &s
}

// ValidateManifest checks a manifest against the manifest schema
func ValidateManifest(m *model.Manifest) error {
	return validate("manifest", manifestSchema, m)
}

// ValidateDispatch checks a dispatch payload against the dispatch schema
func ValidateDispatch(p *model.DispatchPayload) error {
	return validate("dispatch payload", dispatchSchema, p)
}

func validate(name string, s *openapi3.Schema, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal "+name)
	}

	// VisitJSON expects the generic representation produced by encoding/json
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return goerr.Wrap(err, "failed to decode "+name)
	}

	if err := s.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return goerr.Wrap(err, name+" does not match schema",
			goerr.T(model.ErrTagSchema),
			goerr.V("document", string(raw)),
		)
	}
	return nil
}
