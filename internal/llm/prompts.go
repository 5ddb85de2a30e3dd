package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analysis.txt
var analysisPrompt string

// SystemPrompt is shared by all providers.
const SystemPrompt = "You are a legal document analysis engine. Respond with JSON only. Never omit keys. Output must match the schema exactly."

// BuildPrompt renders the analysis prompt for the given input.
func BuildPrompt(input AnalyzeInput) string {
	docType := strings.TrimSpace(input.DocumentType)
	if docType == "" {
		docType = "unknown"
	}
	replacer := strings.NewReplacer(
		"{{DOCUMENT_TYPE}}", docType,
		"{{DOCUMENT_TEXT}}", input.DocumentText,
	)
	return replacer.Replace(analysisPrompt)
}
