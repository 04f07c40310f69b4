package submit

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// SubmitPath is the endpoint path appended to the API base URL.
const SubmitPath = "/e-collection/submit"

//go:embed contract.yaml
var contractDocument []byte

// Contract is the OpenAPI description of the submit endpoint. It is used to
// check outgoing payloads and incoming responses; violations are reported,
// never enforced on the wire.
type Contract struct {
	required []string
	response *openapi3.Schema
}

// LoadContract parses and validates the embedded OpenAPI document.
func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractDocument)
	if err != nil {
		return nil, fmt.Errorf("submit: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("submit: validate contract: %w", err)
	}

	item := doc.Paths.Find(SubmitPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("submit: contract has no POST %s", SubmitPath)
	}
	op := item.Post

	contract := &Contract{}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if media := op.RequestBody.Value.Content.Get("multipart/form-data"); media != nil && media.Schema != nil && media.Schema.Value != nil {
			contract.required = append([]string(nil), media.Schema.Value.Required...)
		}
	}

	if op.Responses != nil {
		if ref := op.Responses.Default(); ref != nil && ref.Value != nil {
			if media := ref.Value.Content.Get("application/json"); media != nil && media.Schema != nil {
				contract.response = media.Schema.Value
			}
		}
	}
	if contract.response == nil {
		return nil, errors.New("submit: contract has no JSON response schema")
	}
	return contract, nil
}

// RequiredFields lists the payload keys the endpoint requires.
func (c *Contract) RequiredFields() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.required...)
}

// CheckPayload reports required keys missing from p.
func (c *Contract) CheckPayload(p Payload) error {
	if c == nil {
		return nil
	}
	var missing []string
	for _, key := range c.required {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("submit: payload missing required keys %v", missing)
	}
	return nil
}

// CheckResponse validates a decoded JSON response body against the contract.
func (c *Contract) CheckResponse(body any) error {
	if c == nil || c.response == nil {
		return nil
	}
	if err := c.response.VisitJSON(body); err != nil {
		return fmt.Errorf("submit: response violates contract: %w", err)
	}
	return nil
}
