// Package gemini answers documentation questions with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docdb"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements docdb.Asker at compile time.
var _ docdb.Asker = (*Asker)(nil)

// Asker implements docdb.Asker by sending assembled documentation context
// and the question to Gemini.
type Asker struct {
	client   *genai.Client
	contexts docdb.ContextBuilder

	// Model defaults to DefaultModel.
	Model string

	// MaxWords is the context budget; zero uses the builder default.
	MaxWords int

	// Domain names the documentation in the system instruction.
	Domain string
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, contexts docdb.ContextBuilder) *Asker {
	return &Asker{client: client, contexts: contexts, Model: DefaultModel, Domain: "documentation"}
}

// Ask answers a natural language question from the stored documentation.
// Returns ENOTFOUND when no documentation matches the question.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", docdb.Errorf(docdb.EINVALID, "question required")
	}

	docs, err := a.contexts.BuildContext(ctx, question, a.MaxWords)
	if err != nil {
		return "", err
	}
	if docs == "" {
		return "", docdb.Errorf(docdb.ENOTFOUND, "no documentation found for %q", question)
	}

	model := a.Model
	if model == "" {
		model = DefaultModel
	}

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(docs, question)}},
		}},
		BuildConfig(a.Domain),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docdb.Errorf(docdb.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(domain string) *genai.GenerateContentConfig {
	if domain == "" {
		domain = "documentation"
	}
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are an expert consultant with deep knowledge of the provided %s. "+
					"Use the documentation in the prompt to give accurate, detailed answers. "+
					"Base your answers strictly on that documentation and say so when it does not cover the question.", domain),
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt wraps assembled context and the question into the prompt.
func BuildUserPrompt(docs, question string) string {
	var sb strings.Builder
	sb.WriteString("<documentation>\n")
	sb.WriteString(docs)
	sb.WriteString("\n</documentation>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
