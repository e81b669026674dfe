// Package insight generates a natural-language sales summary from
// recent transactions using the Gemini API. Any failure, including a
// missing credential, degrades to a fixed fallback message rather than
// an error.
package insight

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"washpos/backend/internal/domain"
	"washpos/backend/internal/sheets"
)

// Fallback is shown whenever a summary cannot be produced.
const Fallback = "Unable to generate insights at this time. Please try again later."

// maxTransactions caps how much history goes into the prompt.
const maxTransactions = 50

// contentModel is the slice of the genai client the generator needs,
// split out so tests can stub the model call.
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Generator struct {
	model contentModel
	cache Cache
	ttl   time.Duration
}

// NewGenerator wires a generator over an optional genai client. A nil
// client produces a generator that always answers with Fallback.
func NewGenerator(client *genai.Client, modelName string, cache Cache, ttl time.Duration) *Generator {
	gen := &Generator{cache: cache, ttl: ttl}
	if gen.cache == nil {
		gen.cache = NoopCache{}
	}
	if client != nil {
		gen.model = client.GenerativeModel(modelName)
	}
	return gen
}

// Summarize produces an analyst-style writeup over the given recent
// transactions (newest first). It never returns an error: every failure
// path resolves to Fallback.
func (g *Generator) Summarize(ctx context.Context, recent []domain.Transaction) string {
	if g == nil || g.model == nil {
		return Fallback
	}
	if len(recent) > maxTransactions {
		recent = recent[:maxTransactions]
	}

	key := cacheKey(recent)
	if cached, ok, err := g.cache.Get(ctx, key); err != nil {
		log.Printf("[insight] cache get: %v", err)
	} else if ok {
		return cached
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(recent)))
	if err != nil {
		log.Printf("[insight] generate content: %v", err)
		return Fallback
	}

	text := extractText(resp)
	if text == "" {
		log.Printf("[insight] empty response from model")
		return Fallback
	}

	if err := g.cache.Set(ctx, key, text, g.ttl); err != nil {
		log.Printf("[insight] cache set: %v", err)
	}
	return text
}

func cacheKey(recent []domain.Transaction) string {
	latest := ""
	if len(recent) > 0 {
		latest = recent[0].ID
	}
	return fmt.Sprintf("insight:%d:%s", len(recent), latest)
}

func buildPrompt(recent []domain.Transaction) string {
	var b strings.Builder
	b.WriteString("You are an expert business analyst for a car-wash service.\n")
	b.WriteString("Analyze the following recent transaction history from a POS system.\n\n")
	b.WriteString("Transactions (newest first, amounts in THB):\n")
	for _, tx := range recent {
		fmt.Fprintf(&b, "- %s | %s | %s\n",
			tx.Timestamp.Format("Mon 15:04"),
			sheets.FormatAmount(tx.TotalCents),
			sheets.ItemSummary(tx.Items))
	}
	b.WriteString("\nPlease provide a concise but insightful summary.\n")
	b.WriteString("1. Identify popular services.\n")
	b.WriteString("2. Comment on the average order value.\n")
	b.WriteString("3. Provide one actionable tip for the manager to increase revenue based on this limited snapshot.\n")
	b.WriteString("\nKeep the tone professional and encouraging. Limit to 150 words.\n")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	return strings.TrimSpace(b.String())
}
