package openai

import (
	"strings"

	"autofill-backend/internal/schema"
)

// Message is one chat turn sent to the provider.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = `You are a precise data extraction assistant for scanned Indian identity and academic documents. You respond with a single JSON object and nothing else.`

// BuildExtractionPrompt asks the model to pull every canonical field out of
// the recognized document text. Missing fields must come back as null so the
// caller can tell "absent" from "empty".
func BuildExtractionPrompt(documentText string) []Message {
	var b strings.Builder
	b.WriteString("Extract the following fields from the document text below.\n")
	b.WriteString("Return a JSON object whose keys are exactly these field names:\n\n")
	b.WriteString(strings.Join(schema.Fields, ", "))
	b.WriteString("\n\nUse null for any field not present in the document. ")
	b.WriteString("Copy values verbatim; do not invent or reformat them.\n\n")
	b.WriteString("Document text:\n")
	b.WriteString(documentText)

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}
