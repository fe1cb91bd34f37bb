package cloud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	reCode     = regexp.MustCompile(`^(S\d+-)?\d{1,3}(\.\d{1,3}){0,4}$`)
	reQuantity = regexp.MustCompile(`^\d{1,3}(\.\d{3})*([,.]\d+)?$|^\d+([,.]\d+)?$`)
)

// sanitize removes malformed optional fields from the service's answer so
// that the strict schema can still validate the rest of the document.
// Required fields are never touched. Returns the cleaned document and the
// list of dropped field paths.
func sanitize(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("decode response: %w", err)
	}

	var dropped []string
	items, _ := m["items"].([]any)
	for i, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := item["code"].(string); ok {
			s := strings.TrimSpace(v)
			if !reCode.MatchString(s) {
				delete(item, "code")
				dropped = append(dropped, fmt.Sprintf("items[%d].code", i))
			} else {
				item["code"] = s
			}
		}
		if v, ok := item["quantity"].(string); ok {
			s := strings.TrimSpace(v)
			if !reQuantity.MatchString(s) {
				delete(item, "quantity")
				dropped = append(dropped, fmt.Sprintf("items[%d].quantity", i))
			} else {
				item["quantity"] = s
			}
		}
		if v, ok := item["unit"].(string); ok {
			s := strings.TrimSpace(v)
			if len(s) > 10 {
				delete(item, "unit")
				dropped = append(dropped, fmt.Sprintf("items[%d].unit", i))
			} else {
				item["unit"] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return out, dropped, nil
}

// validate checks a sanitized answer against the strict response schema.
func validate(data []byte) error {
	b, err := json.Marshal(responseSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
