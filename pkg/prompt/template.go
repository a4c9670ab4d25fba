// Package prompt builds LLM prompts from note fields and parses the
// structured responses back into field updates.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FieldMapping pairs a target field name with the instruction describing
// what the model should generate for it.
type FieldMapping struct {
	Field       string
	Description string
}

// ErrNoJSON indicates that a model response contained no JSON object.
var ErrNoJSON = errors.New("prompt: no JSON object found in response")

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseFieldMappings parses "Field: description" lines into ordered
// mappings. Blank lines and lines without a colon are skipped. Order is
// preserved so rendered prompts are deterministic.
func ParseFieldMappings(text string) []FieldMapping {
	var mappings []FieldMapping

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		field, description, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.TrimSpace(field)
		description = strings.TrimSpace(description)
		if field == "" || description == "" {
			continue
		}
		mappings = append(mappings, FieldMapping{Field: field, Description: description})
	}

	return mappings
}

// Template renders fill prompts for one note at a time.
type Template struct {
	// Text is the user-authored prompt body with {FieldName} placeholders.
	Text string

	// Mappings lists the fields the model must generate, in order.
	Mappings []FieldMapping
}

// Render fills the template's placeholders with the note's current field
// values (converted from HTML to Markdown for readability) and appends
// the generation instructions and JSON formatting trailer.
func (t *Template) Render(fields map[string]string) string {
	var b strings.Builder

	text := t.Text
	for name, value := range fields {
		placeholder := "{" + name + "}"
		text = strings.ReplaceAll(text, placeholder, HTMLToMarkdown(value))
	}
	b.WriteString(text)

	b.WriteString("\n\nPlease generate content for these fields:\n")
	for _, m := range t.Mappings {
		fmt.Fprintf(&b, "\n- %s: %s", m.Field, m.Description)
	}

	b.WriteString("\n\nProvide your response in JSON format with field names as keys. For example:\n")
	b.WriteString("{\n")
	examples := t.Mappings
	if len(examples) > 2 {
		examples = examples[:2]
	}
	for _, m := range examples {
		fmt.Fprintf(&b, "  %q: \"Content for %s\",\n", m.Field, m.Field)
	}
	b.WriteString("  ...\n}")
	b.WriteString("\nYour response should be a valid JSON, so I can parse it directly.")
	b.WriteString("\nThe response should contain only one combination.")

	return b.String()
}

// ParseResponse extracts the first JSON object from a model response and
// decodes it into field updates. Model chatter before or after the object
// is tolerated; a missing or malformed object is an error.
func ParseResponse(response string) (map[string]string, error) {
	match := jsonObjectPattern.FindString(response)
	if match == "" {
		return nil, ErrNoJSON
	}

	var updates map[string]string
	if err := json.Unmarshal([]byte(match), &updates); err != nil {
		return nil, fmt.Errorf("prompt: response JSON is not a flat object of strings: %w", err)
	}

	return updates, nil
}
