// Package insights is the Munshi Ji assistant: a conversational layer
// over the user's work records backed by a generative text API. Its only
// failure handling is catch-and-display; there are no retries and no
// cancellation of an in-flight request.
package insights

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/stitchlog/internal/models"
)

const defaultModel = "gemini-2.5-flash"

type Client struct {
	ai    *genai.Client
	model string
}

// NewClient builds a client from the GEMINI_API_KEY environment
// variable.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	ai, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to init AI client: %w", err)
	}

	return &Client{ai: ai, model: defaultModel}, nil
}

// Ask sends one question grounded in the user's recent records and
// returns the assistant's reply.
func (c *Client) Ask(ctx context.Context, user models.User, visibleRecords []models.DailyRecord, question string) (string, error) {
	snapshot, err := Snapshot(user, visibleRecords)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(snapshot, question)
	resp, err := c.ai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("AI generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from AI")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			reply.WriteString(part.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("empty response from AI")
	}
	return reply.String(), nil
}

func buildPrompt(snapshot, question string) string {
	var b strings.Builder
	b.WriteString("You are a wise, experienced, and friendly Munshi Ji from India. Your name is Munshi Ji.\n")
	b.WriteString("Your job is to check the hisaab-kitaab (accounts) of a garment factory worker and answer their questions.\n")
	b.WriteString("ALWAYS respond in a respectful but friendly Hinglish tone (Hindi written in English letters). ")
	b.WriteString("Address the user by their name followed by \"ji\". Avoid overly familiar terms like \"Beta\". ")
	b.WriteString("You can use encouraging words like \"Shabash\".\n\n")
	b.WriteString("Focus on what matters to the worker: earnings (kamai), progress toward the goal (lakshya), ")
	b.WriteString("the best days, and the most profitable cloth type. Do NOT focus on defects like Rework or Oil ")
	b.WriteString("unless asked. All money is in Indian Rupees. Keep answers short and easy to understand. ")
	b.WriteString("Format as plain text or simple markdown. Do not output JSON.\n\n")
	b.WriteString("Here is the worker's data (hisaab-kitaab):\n")
	b.WriteString(snapshot)
	b.WriteString("\n\nHere is the worker's question:\n\"")
	b.WriteString(question)
	b.WriteString("\"\n")
	return b.String()
}
