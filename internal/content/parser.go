// Package content validates authored script payloads and builds the
// per-script evaluation rules index. Parsing is pure: the same raw payload
// always yields the same typed script.
package content

import (
	"encoding/json"
	"fmt"

	"cosplay-server/internal/models"
)

// Script couples the validated content with its rules index. The index is
// built once per parse, never per request.
type Script struct {
	models.ScriptContent
	Rules *RulesIndex
}

// rawScript mirrors the authored JSON shape. Optional scoring constants are
// pointers so that an explicit zero can be told apart from an absent field.
type rawScript struct {
	Summary         string                     `json:"summary"`
	Setting         string                     `json:"setting"`
	BaseScore       *int                       `json:"base_score"`
	PointStep       *int                       `json:"point_step"`
	Abilities       []models.AbilityDescriptor `json:"abilities"`
	Scenes          []rawScene                 `json:"scenes"`
	EvaluationRules []models.EvaluationRule    `json:"evaluation_rules"`
}

type rawScene struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Narrative string      `json:"narrative"`
	Options   []rawOption `json:"options"`
}

type rawOption struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Description string         `json:"description"`
	Effects     map[string]int `json:"effects"`
	Feedback    string         `json:"feedback"`
}

// ParseScript validates raw script content and returns the typed script.
// Any structural defect is reported as models.ErrInvalidScriptContent: it is
// an authoring bug and must surface as a server error, not a client one.
func ParseScript(raw json.RawMessage) (*Script, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: content is empty", models.ErrInvalidScriptContent)
	}

	var decoded rawScript
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidScriptContent, err)
	}
	if decoded.Summary == "" {
		return nil, fmt.Errorf("%w: summary is required", models.ErrInvalidScriptContent)
	}

	content := models.ScriptContent{
		Summary:   decoded.Summary,
		Setting:   decoded.Setting,
		BaseScore: models.DefaultBaseScore,
		PointStep: models.DefaultPointStep,
	}
	if decoded.BaseScore != nil {
		content.BaseScore = *decoded.BaseScore
	}
	if decoded.PointStep != nil {
		content.PointStep = *decoded.PointStep
	}

	for i, ability := range decoded.Abilities {
		if ability.Code == "" || ability.Name == "" {
			return nil, fmt.Errorf("%w: ability %d is missing code or name", models.ErrInvalidScriptContent, i)
		}
		content.Abilities = append(content.Abilities, ability)
	}

	for i, scene := range decoded.Scenes {
		parsed, err := parseScene(scene)
		if err != nil {
			return nil, fmt.Errorf("%w: scene %d: %v", models.ErrInvalidScriptContent, i, err)
		}
		content.Scenes = append(content.Scenes, *parsed)
	}

	for i, rule := range decoded.EvaluationRules {
		if rule.Key == "" || rule.Route == "" || rule.Summary == "" || rule.Advice == "" {
			return nil, fmt.Errorf("%w: evaluation rule %d is missing a required field", models.ErrInvalidScriptContent, i)
		}
		content.EvaluationRules = append(content.EvaluationRules, rule)
	}

	return &Script{
		ScriptContent: content,
		Rules:         NewRulesIndex(content.EvaluationRules),
	}, nil
}

func parseScene(scene rawScene) (*models.SceneDefinition, error) {
	if scene.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if scene.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if scene.Narrative == "" {
		return nil, fmt.Errorf("narrative is required")
	}
	if len(scene.Options) == 0 {
		return nil, fmt.Errorf("at least one option is required")
	}

	parsed := &models.SceneDefinition{
		ID:        scene.ID,
		Title:     scene.Title,
		Narrative: scene.Narrative,
	}
	for i, opt := range scene.Options {
		if opt.ID == "" || opt.Text == "" {
			return nil, fmt.Errorf("option %d is missing id or text", i)
		}
		effects := opt.Effects
		if effects == nil {
			effects = map[string]int{}
		}
		parsed.Options = append(parsed.Options, models.OptionDefinition{
			ID:          opt.ID,
			Text:        opt.Text,
			Description: opt.Description,
			Effects:     effects,
			Feedback:    opt.Feedback,
		})
	}
	return parsed, nil
}
