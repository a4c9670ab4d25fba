package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFieldMappings(t *testing.T) {
	text := `
Front: The word being studied

Definition: A concise definition of the word
Example: An example sentence using the word
not a mapping line
: missing field name
Empty:
`
	mappings := ParseFieldMappings(text)

	want := []FieldMapping{
		{Field: "Front", Description: "The word being studied"},
		{Field: "Definition", Description: "A concise definition of the word"},
		{Field: "Example", Description: "An example sentence using the word"},
	}

	if len(mappings) != len(want) {
		t.Fatalf("Expected %d mappings, got %d: %v", len(want), len(mappings), mappings)
	}
	for i, m := range mappings {
		if m != want[i] {
			t.Errorf("Mapping %d: expected %v, got %v", i, want[i], m)
		}
	}
}

func TestParseFieldMappings_DescriptionMayContainColons(t *testing.T) {
	mappings := ParseFieldMappings("Note: remember: colons are fine")
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if mappings[0].Description != "remember: colons are fine" {
		t.Errorf("Expected description split on first colon only, got %q", mappings[0].Description)
	}
}

func TestTemplate_Render(t *testing.T) {
	tmpl := &Template{
		Text: "The word is {Front}.",
		Mappings: []FieldMapping{
			{Field: "Definition", Description: "A concise definition"},
			{Field: "Example", Description: "An example sentence"},
		},
	}

	rendered := tmpl.Render(map[string]string{"Front": "<b>ephemeral</b>"})

	if !strings.Contains(rendered, "The word is **ephemeral**.") {
		t.Errorf("Expected placeholder filled with Markdown value, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "- Definition: A concise definition") {
		t.Error("Expected field instructions in rendered prompt")
	}
	if !strings.Contains(rendered, `"Definition": "Content for Definition"`) {
		t.Error("Expected JSON example in rendered prompt")
	}
	if !strings.Contains(rendered, "valid JSON") {
		t.Error("Expected JSON formatting trailer in rendered prompt")
	}
}

func TestTemplate_RenderLeavesUnknownPlaceholders(t *testing.T) {
	tmpl := &Template{Text: "Value: {Missing}"}
	rendered := tmpl.Render(map[string]string{"Front": "x"})
	if !strings.Contains(rendered, "{Missing}") {
		t.Error("Expected unmapped placeholder to pass through unchanged")
	}
}

func TestParseResponse(t *testing.T) {
	response := "Sure! Here is the content you asked for:\n" +
		"{\n  \"Definition\": \"Lasting a very short time\",\n  \"Example\": \"Fame is ephemeral.\"\n}\n" +
		"Let me know if you need anything else."

	updates, err := ParseResponse(response)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if updates["Definition"] != "Lasting a very short time" {
		t.Errorf("Unexpected Definition: %q", updates["Definition"])
	}
	if updates["Example"] != "Fame is ephemeral." {
		t.Errorf("Unexpected Example: %q", updates["Example"])
	}
}

func TestParseResponse_NoJSON(t *testing.T) {
	_, err := ParseResponse("I could not generate anything useful.")
	if !errors.Is(err, ErrNoJSON) {
		t.Errorf("Expected ErrNoJSON, got %v", err)
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse(`{"Definition": ["not", "a", "string"]}`)
	if err == nil {
		t.Error("Expected error for non-string field values")
	}
}
