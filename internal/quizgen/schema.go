package quizgen

import "github.com/abhisek/smartquiz/internal/llm"

// QuestionSchema defines the JSON schema for generated quiz questions.
// Providers with native structured output use it directly; the pipeline
// still re-validates the fields itself because not every provider
// honors the schema.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Short unique identifier for the question, e.g. q-1",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic the question belongs to, exactly as given in the prompt",
			},
			"level": map[string]any{
				"type":        "string",
				"enum":        []any{"Beginner", "Intermediate", "Advanced"},
				"description": "Difficulty level, exactly as given in the prompt",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question text. Scenario- or reasoning-based, at least one full sentence.",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 answer choices. Full answer texts, never placeholders like 'Option A'.",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct choice, copied verbatim from options",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"MCQ"},
				"description": "The question kind",
			},
		},
		"required":             []any{"id", "topic", "level", "question", "options", "correct_answer", "type"},
		"additionalProperties": false,
	},
}
