package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EditorBrief is the structured production guide attached to an iteration
// group: what to shoot, how to style it, what to avoid.
type EditorBrief struct {
	BRoll         []string `json:"b_roll"`
	OnScreenStyle string   `json:"on_screen_style"`
	Pacing        string   `json:"pacing"`
	Dos           []string `json:"dos"`
	Donts         []string `json:"donts"`
}

// ScalingPlan is the document persisted on an iteration group. It is stored
// verbatim as returned by the brief synthesizer.
type ScalingPlan struct {
	EditorBrief EditorBrief `json:"editor_brief"`
}

// IterationGroup is the unit of one scaling invocation: the winner that was
// scaled plus every child variant the call produced share this id. Created
// exactly once per successful scaling call and never mutated afterward.
type IterationGroup struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RootVariantID uuid.UUID      `gorm:"type:uuid;not null;index" json:"root_variant_id"`
	ScalingPlan   datatypes.JSON `gorm:"column:scaling_plan" json:"scaling_plan"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (IterationGroup) TableName() string { return "iteration_groups" }

// Plan decodes the stored scaling plan document.
func (g *IterationGroup) Plan() (ScalingPlan, error) {
	var plan ScalingPlan
	if len(g.ScalingPlan) == 0 {
		return plan, nil
	}
	err := json.Unmarshal(g.ScalingPlan, &plan)
	return plan, err
}
