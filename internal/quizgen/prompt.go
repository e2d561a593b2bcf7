package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/smartquiz/internal/quiz"
)

const systemPrompt = `You are an expert exam author creating multiple-choice questions for adult learners.

Rules:
- Generate exactly one question for the given topic and difficulty level.
- The question must require reasoning: a scenario, a comparison, or an application of the concept. Never ask for a bare definition.
- Provide exactly 4 options. Every option is a full, plausible answer text. Never write placeholders like "Option A" or "Choice 1".
- Exactly one option is correct; the correct_answer field copies it verbatim.
- Distractors must reflect realistic misconceptions, not random noise.
- Beginner questions test a single concept. Intermediate questions combine two. Advanced questions involve edge cases or trade-offs.
- Respond with a single JSON object and nothing else.`

// buildUserMessage parameterizes the prompt by topic, level, and the
// question's ordinal position in the attempt. The ordinal nudges the
// model away from reusing its favorite opener for a topic.
func buildUserMessage(topic string, level quiz.Level, index int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Level: %s\n", level)
	fmt.Fprintf(&b, "Question number in this quiz: %d\n", index+1)
	b.WriteString("\nReturn a JSON object with fields: id, topic, level, question, options, correct_answer, type.\n")
	b.WriteString(`Set "type" to "MCQ". Echo the topic and level exactly as given above.`)

	return b.String()
}
