package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Default scoring constants applied when the script content omits them.
const (
	DefaultBaseScore = 50
	DefaultPointStep = 10
)

// BalancedRuleKey is the literal evaluation-rule key matched when the final
// scores show no clear leading pair of dimensions.
const BalancedRuleKey = "balanced"

// CosplayScript is the persisted script record. Content holds the authored
// JSON payload and is validated by the content package on every load.
type CosplayScript struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Title     string          `db:"title" json:"title"`
	Content   json.RawMessage `db:"content" json:"content"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// AbilityDescriptor defines one scored dimension of a script.
type AbilityDescriptor struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// OptionDefinition is a single choice within a scene. Effects map ability
// codes to integer units; units are scaled by the script's point step when
// the option is applied.
type OptionDefinition struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Description string         `json:"description,omitempty"`
	Effects     map[string]int `json:"effects"`
	Feedback    string         `json:"feedback"`
}

// SceneDefinition is one step of the branching narrative.
type SceneDefinition struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Narrative string             `json:"narrative"`
	Options   []OptionDefinition `json:"options"`
}

// EvaluationRule maps a combination of leading ability codes to the narrative
// outcome shown in the final report. Key is either BalancedRuleKey or a
// "+"-joined pair of ability codes.
type EvaluationRule struct {
	Key     string `json:"key"`
	Route   string `json:"route"`
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
}

// ScriptContent is the validated, typed form of CosplayScript.Content.
type ScriptContent struct {
	Summary         string              `json:"summary"`
	Setting         string              `json:"setting,omitempty"`
	BaseScore       int                 `json:"base_score"`
	PointStep       int                 `json:"point_step"`
	Abilities       []AbilityDescriptor `json:"abilities"`
	Scenes          []SceneDefinition   `json:"scenes"`
	EvaluationRules []EvaluationRule    `json:"evaluation_rules"`
}

// TotalScenes returns the number of scenes in the script.
func (c *ScriptContent) TotalScenes() int {
	return len(c.Scenes)
}

// AbilityCodes returns the ability codes in declaration order.
func (c *ScriptContent) AbilityCodes() []string {
	codes := make([]string, 0, len(c.Abilities))
	for _, ability := range c.Abilities {
		codes = append(codes, ability.Code)
	}
	return codes
}

// FindScene returns the scene at the given index, or nil if the index is out
// of range.
func (c *ScriptContent) FindScene(index int) *SceneDefinition {
	if index < 0 || index >= len(c.Scenes) {
		return nil
	}
	return &c.Scenes[index]
}

// FindOption locates an option by id within a scene definition.
func (s *SceneDefinition) FindOption(optionID string) *OptionDefinition {
	for i := range s.Options {
		if s.Options[i].ID == optionID {
			return &s.Options[i]
		}
	}
	return nil
}
