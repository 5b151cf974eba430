package classify

import (
	"encoding/json"
	"strings"
)

// BuildPrompt renders the classification instruction for one input. The
// model is told to answer with a JSON array holding a single object and
// nothing else; ParseResponse copes with the decoration it adds anyway.
func BuildPrompt(input Input) (string, error) {
	payload, err := json.Marshal([]Input{input})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a careful and conservative classifier.\n\n")
	b.WriteString("Your task is to classify open-source plugins using ONLY the provided input data ")
	b.WriteString("(README content if present, otherwise description + tags + metadata).\n\n")
	b.WriteString("Do NOT use external knowledge.\n")
	b.WriteString("Do NOT infer features not stated in the input.\n")
	b.WriteString("When uncertain, choose the safest and most generic category.\n\n")
	b.WriteString("GENERIC CATEGORIES:\n")
	b.WriteString(strings.Join(GenericCategories, ", "))
	b.WriteString("\n\nPLATFORM-SPECIFIC CATEGORIES:\n")
	b.WriteString(strings.Join(PlatformCategories[input.Platform], ", "))
	b.WriteString("\n\nTASK:\n")
	b.WriteString("- Assign 1-3 generic categories from the GENERIC list.\n")
	b.WriteString("- Assign 1-3 platform-specific categories from the platform list.\n")
	b.WriteString("- If README is empty, classify using only description and tags.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- Use ONLY the predefined category lists.\n")
	b.WriteString("- Prefer fewer categories over many.\n")
	b.WriteString("- If classification is ambiguous, select utilities_misc.\n")
	b.WriteString("- Categories must be clearly supported by the input text.\n")
	b.WriteString("- Output MUST be valid JSON and nothing else.\n\n")
	b.WriteString("INPUT:\n")
	b.Write(payload)
	b.WriteString("\n\nOUTPUT FORMAT:\n")
	b.WriteString("Return a JSON array with a single object:\n")
	b.WriteString(`[
  {
    "platform": string,
    "repo": string,
    "name": string,
    "generic_categories": [string],
    "specific_categories": [string],
    "readme_missing": boolean,
    "confidence": number
  }
]
`)
	return b.String(), nil
}
