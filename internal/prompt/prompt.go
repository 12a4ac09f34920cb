// Package prompt builds the text sent to the remote model.
//
// PROMPTS ARE DATA, NOT LOGIC:
// The tier → instruction mapping lives in a lookup table rather than a
// switch. A table keeps the mapping total over the Tier enumeration, makes
// "every tier has a distinct instruction" trivially testable, and means
// adding a tier is a data change, not a control-flow change.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sakif/code-explainer/internal/model"
)

// SystemPersona is the system-role message sent with every request.
// It frames the assistant before the user prompt arrives.
const SystemPersona = "You are an expert programming instructor who excels at explaining code in clear, understandable language. Always be encouraging and educational."

// tierInstructions maps each tier to its fixed instruction string.
// One entry per model.Tiers value — keep them in sync.
var tierInstructions = map[model.Tier]string{
	model.TierBeginner:     "Explain this code in very simple terms, as if talking to someone who just started programming. Use everyday language and avoid technical jargon.",
	model.TierIntermediate: "Explain this code clearly, including the main concepts and how different parts work together. Use some technical terms but explain them.",
	model.TierAdvanced:     "Provide a detailed technical explanation of this code, including algorithms, design patterns, and performance considerations.",
}

// Instruction returns the fixed instruction string for a tier.
// The boolean is false for a tier outside the enumeration.
func Instruction(tier model.Tier) (string, bool) {
	s, ok := tierInstructions[tier]
	return s, ok
}

// Build assembles the user prompt for one explain request: the tier
// instruction, the language label, the code fenced with the lower-cased
// label, and the fixed four-point structure the model is asked to follow.
//
// The structure is a request to the model, not a contract — nothing parses
// the response against it. The language label and the code pass through
// verbatim, by design.
func Build(code, language string, tier model.Tier) (string, error) {
	instruction, ok := Instruction(tier)
	if !ok {
		return "", fmt.Errorf("prompt: unknown tier %q", tier)
	}

	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")
	b.WriteString("Programming Language: ")
	b.WriteString(language)
	b.WriteString("\n\n")
	b.WriteString("Code to explain:\n")
	b.WriteString("```")
	b.WriteString(strings.ToLower(language))
	b.WriteString("\n")
	b.WriteString(code)
	b.WriteString("\n```\n\n")
	b.WriteString(`Please provide:
1. A brief overview of what the code does
2. Step-by-step explanation of each part
3. Key concepts or techniques used
4. Any potential improvements or considerations (if applicable)

Format your response in a clear, easy-to-read manner.`)

	return b.String(), nil
}
