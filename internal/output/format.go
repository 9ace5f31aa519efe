package output

import "fmt"

// Format selects the on-disk encoding of the generated site data.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSON, FormatJSONL:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: json, jsonl)", value)
	}
}
