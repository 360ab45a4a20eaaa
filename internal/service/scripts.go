package service

import (
	"context"

	"cosplay-server/internal/content"
	"cosplay-server/internal/models"

	"github.com/google/uuid"
)

// ListScripts returns summary metadata for every authored script. A script
// with invalid content aborts the listing: that is an authoring defect that
// must surface, not be silently hidden.
func (s *cosplayService) ListScripts(ctx context.Context) ([]models.ScriptSummary, error) {
	records, err := s.scripts.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ScriptSummary, 0, len(records))
	for i := range records {
		record := &records[i]
		script, err := content.ParseScript(record.Content)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, scriptSummary(record, script))
	}
	return summaries, nil
}

// GetScriptDetail returns the full descriptor of one script, including its
// ability dimensions.
func (s *cosplayService) GetScriptDetail(ctx context.Context, scriptID uuid.UUID) (*models.ScriptDetail, error) {
	record, script, err := s.loadScript(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	detail := &models.ScriptDetail{
		ScriptSummary: scriptSummary(record, script),
		Abilities:     script.Abilities,
	}
	return detail, nil
}

func scriptSummary(record *models.CosplayScript, script *content.Script) models.ScriptSummary {
	return models.ScriptSummary{
		ID:          record.ID,
		Title:       record.Title,
		Summary:     script.Summary,
		Setting:     script.Setting,
		TotalScenes: script.TotalScenes(),
		UpdatedAt:   record.UpdatedAt,
	}
}
