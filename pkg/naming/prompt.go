package naming

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"ai-renamer-be/pkg/filename"
)

const promptPreamble = "The user wants to rename this file. Their description of what the filename should be:"

const formatInstructions = `

Respond ONLY with valid JSON in this exact format:
{
  "newName": "filename_without_extension",
  "reasoning": "short reasoning (5-10 words max)",
  "rating": 1-3
}

Rating scale: 1=uncertain/guess, 2=reasonably confident, 3=very confident
Do not include explanation outside the JSON.`

// BuildPrompt wraps the user's free-text instructions with the JSON contract.
func BuildPrompt(userPrompt string) string {
	return fmt.Sprintf("%s\n\n\"%s\"%s", promptPreamble, userPrompt, formatInstructions)
}

type suggestion struct {
	NewName   *string  `json:"newName"`
	Reasoning *string  `json:"reasoning"`
	Rating    *float64 `json:"rating"`
}

// ParseSuggestion turns the model's raw text into a Result for a file with
// extension ext.
func ParseSuggestion(raw, ext string) (*Result, error) {
	clean := stripCodeFence(raw)

	var s suggestion
	if err := json.Unmarshal([]byte(clean), &s); err != nil {
		return nil, invalidFormat(fmt.Errorf("parse suggestion: %w | raw: %s", err, clean))
	}
	if s.NewName == nil || strings.TrimSpace(*s.NewName) == "" {
		return nil, invalidFormat(errors.New("suggestion has no newName"))
	}
	if s.Rating == nil {
		return nil, invalidFormat(errors.New("suggestion has no numeric rating"))
	}

	res := &Result{
		NewName: filename.EnsureExtension(strings.TrimSpace(*s.NewName), ext),
		Rating:  clampRating(*s.Rating),
	}
	if s.Reasoning != nil {
		res.Reasoning = *s.Reasoning
	}
	return res, nil
}

func clampRating(r float64) int {
	return int(math.Min(math.Max(math.Round(r), 1), 3))
}

// stripCodeFence removes a Markdown fence, with or without a json tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
