package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// withSchemaInstruction appends the serialized output schema to a system
// prompt for providers without a native constrained-decoding mode. The
// model otherwise has no way to learn the expected structure, including
// the envelope wrapper every contract requires.
func withSchemaInstruction(system string, req Request) string {
	if req.Schema == nil {
		return system
	}
	doc, err := json.MarshalIndent(req.Schema, "", "  ")
	if err != nil {
		return system
	}
	instruction := fmt.Sprintf(
		"Return ONLY valid JSON matching this exact JSON Schema. No markdown fences, no explanation.\n\n%s",
		doc,
	)
	if system == "" {
		return instruction
	}
	return system + "\n\n" + instruction
}

// CleanJSONBlock strips markdown code fences and conversational preamble
// from model responses. Models often wrap JSON in ```json blocks or lead
// with prose even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Preamble or trailing prose around a bare JSON value: extract the
	// outermost balanced object or array.
	if extracted := extractBalancedJSON(text); extracted != "" {
		return extracted
	}

	return text
}

// extractBalancedJSON returns the first balanced top-level JSON object or
// array in text, or "" when none is found.
func extractBalancedJSON(text string) string {
	start := -1
	var open, closing byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				closing = '}'
			} else {
				closing = ']'
			}
			break
		}
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
