package llm

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestToGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":       map[string]any{"type": "string"},
						"difficulty": map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
						"answer":     map[string]any{"type": "integer"},
					},
					"required": []string{"text", "answer"},
				},
			},
		},
		"required": []any{"questions"},
	}

	s := toGeminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	qs := s.Properties["questions"]
	if qs == nil || qs.Type != genai.TypeArray {
		t.Fatalf("questions = %+v", qs)
	}
	if qs.MinItems == nil || *qs.MinItems != 1 || qs.MaxItems == nil || *qs.MaxItems != 10 {
		t.Errorf("item bounds = %v/%v", qs.MinItems, qs.MaxItems)
	}
	item := qs.Items
	if item.Properties["answer"].Type != genai.TypeInteger {
		t.Errorf("answer type = %s", item.Properties["answer"].Type)
	}
	if got := item.Properties["difficulty"].Enum; len(got) != 3 {
		t.Errorf("enum = %v", got)
	}
	if len(item.Required) != 2 || len(s.Required) != 1 {
		t.Errorf("required = %v / %v", item.Required, s.Required)
	}
}

func TestToGeminiSchemaUnknownType(t *testing.T) {
	if s := toGeminiSchema(map[string]any{"type": "null"}); s.Type != genai.TypeString {
		t.Errorf("type = %s, want STRING", s.Type)
	}
}

func TestGeminiRequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
