package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/platform/openai"
	"github.com/flashflow/flashflow-backend/internal/types"
)

// maxScriptPromptChars bounds how much of the winner's script goes into the
// synthesis prompt.
const maxScriptPromptChars = 800

// BriefSynthesizer produces the editor brief for one scaling call. It is a
// hard dependency of scaling: if synthesis fails, nothing is written.
type BriefSynthesizer interface {
	Synthesize(ctx context.Context, winner *types.Variant, changeTypes []funnel.ChangeType) (types.EditorBrief, error)
}

// editingGuidance maps each change type to the production notes an editor
// needs when producing treatments along that dimension.
var editingGuidance = map[funnel.ChangeType]string{
	funnel.ChangeHook:         "fast cuts; the first 1-3 seconds must be a pattern interrupt",
	funnel.ChangeOnScreenText: "text-heavy; bold, large, readable on mobile",
	funnel.ChangeCTA:          "CTA overlay bold; medium pace so the ask lands",
	funnel.ChangeCaption:      "caption carries the message; keep visuals calm and clean",
	funnel.ChangeEditStyle:    "vary cut rhythm and transitions; trending sound where it fits",
}

type openaiBriefSynthesizer struct {
	log *logger.Logger
	ai  openai.Client
}

func NewOpenAIBriefSynthesizer(baseLog *logger.Logger, ai openai.Client) BriefSynthesizer {
	return &openaiBriefSynthesizer{
		log: baseLog.With("service", "BriefSynthesizer"),
		ai:  ai,
	}
}

var editorBriefSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"b_roll": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"on_screen_style": map[string]any{"type": "string"},
		"pacing":          map[string]any{"type": "string"},
		"dos": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"donts": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":             []string{"b_roll", "on_screen_style", "pacing", "dos", "donts"},
	"additionalProperties": false,
}

const briefSystemPrompt = `You are a short-form video content strategist. ` +
	`You write concise production briefs for video editors working from a proven winning video. ` +
	`Briefs must be concrete and checkable: b-roll shots to capture, one on-screen text style, ` +
	`one pacing instruction, and short do/don't lists. Sound like a real person, not a marketer.`

func (s *openaiBriefSynthesizer) Synthesize(ctx context.Context, winner *types.Variant, changeTypes []funnel.ChangeType) (types.EditorBrief, error) {
	if winner == nil {
		return types.EditorBrief{}, fmt.Errorf("winner variant required")
	}

	user := s.buildPrompt(winner, changeTypes)
	raw, err := s.ai.GenerateJSON(ctx, briefSystemPrompt, user, "editor_brief", editorBriefSchema)
	if err != nil {
		return types.EditorBrief{}, fmt.Errorf("editor brief generation: %w", err)
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return types.EditorBrief{}, fmt.Errorf("encode editor brief: %w", err)
	}
	var brief types.EditorBrief
	if err := json.Unmarshal(doc, &brief); err != nil {
		return types.EditorBrief{}, fmt.Errorf("decode editor brief: %w", err)
	}

	s.log.Debug("editor brief synthesized",
		"winner_variant_id", winner.ID,
		"b_roll", len(brief.BRoll),
		"dos", len(brief.Dos),
		"donts", len(brief.Donts),
	)
	return brief, nil
}

func (s *openaiBriefSynthesizer) buildPrompt(winner *types.Variant, changeTypes []funnel.ChangeType) string {
	script := winner.Script
	if len(script) > maxScriptPromptChars {
		script = script[:maxScriptPromptChars]
	}

	var b strings.Builder
	b.WriteString("WINNING VIDEO\n")
	if strings.TrimSpace(winner.Title) != "" {
		fmt.Fprintf(&b, "Title: %s\n", winner.Title)
	}
	fmt.Fprintf(&b, "Hook: %s\n", winner.Hook)
	if strings.TrimSpace(script) != "" {
		fmt.Fprintf(&b, "Script:\n%s\n", script)
	}

	b.WriteString("\nThis winner is being scaled into new experimental treatments along these dimensions:\n")
	for _, t := range changeTypes {
		guidance := editingGuidance[t]
		fmt.Fprintf(&b, "- %s: %s\n", t.Label(), guidance)
	}

	b.WriteString("\nWrite one editor brief covering production of all the treatments above: " +
		"b-roll suggestions, the on-screen text style, the pacing, do's, and don'ts. " +
		"Target 15-30 second vertical (9:16) videos.")
	return b.String()
}
