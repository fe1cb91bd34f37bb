package cloud

// responseSchema is the strict shape the extraction service must answer
// with, after the lenient sanitize pass has removed malformed optionals.
var responseSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"items"},
	"additionalProperties": true,
	"properties": map[string]any{
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"description"},
				"properties": map[string]any{
					"code": map[string]any{
						"type":    "string",
						"pattern": `^(S\d+-)?\d{1,3}(\.\d{1,3}){0,4}$`,
					},
					"description": map[string]any{"type": "string"},
					"unit":        map[string]any{"type": "string", "maxLength": 10},
					"quantity": map[string]any{
						"type":    "string",
						"pattern": `^\d{1,3}(\.\d{3})*([,.]\d+)?$|^\d+([,.]\d+)?$`,
					},
					"page": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
		"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
}

// lineItem is one extracted row as the service reports it.
type lineItem struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
	Unit        string `json:"unit,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Page        int    `json:"page,omitempty"`
}

// response is the service's answer document.
type response struct {
	Items      []lineItem `json:"items"`
	Confidence float64    `json:"confidence,omitempty"`
}
