package mapper

import (
	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/model"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) SettingsToEntity(s *model.UserSettings) *entity.UserSettings {
	if s == nil {
		return nil
	}
	return &entity.UserSettings{
		UserId:         s.UserId,
		Theme:          s.Theme,
		SelectedModel:  s.SelectedModel,
		SelectedApiKey: s.SelectedApiKey,
		SelectedPrompt: s.SelectedPrompt,
		CustomPrompt:   s.CustomPrompt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *SettingsMapper) SettingsToModel(s *entity.UserSettings) *model.UserSettings {
	if s == nil {
		return nil
	}
	return &model.UserSettings{
		UserId:         s.UserId,
		Theme:          s.Theme,
		SelectedModel:  s.SelectedModel,
		SelectedApiKey: s.SelectedApiKey,
		SelectedPrompt: s.SelectedPrompt,
		CustomPrompt:   s.CustomPrompt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *SettingsMapper) ApiKeyToEntity(k *model.ApiKey) *entity.ApiKey {
	if k == nil {
		return nil
	}
	return &entity.ApiKey{
		Id:        k.Id,
		UserId:    k.UserId,
		KeyName:   k.KeyName,
		KeyValue:  k.KeyValue,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func (m *SettingsMapper) ApiKeyToModel(k *entity.ApiKey) *model.ApiKey {
	if k == nil {
		return nil
	}
	return &model.ApiKey{
		Id:        k.Id,
		UserId:    k.UserId,
		KeyName:   k.KeyName,
		KeyValue:  k.KeyValue,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func (m *SettingsMapper) ApiKeysToEntities(keys []*model.ApiKey) []*entity.ApiKey {
	out := make([]*entity.ApiKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.ApiKeyToEntity(k))
	}
	return out
}

func (m *SettingsMapper) PromptToEntity(p *model.Prompt) *entity.Prompt {
	if p == nil {
		return nil
	}
	return &entity.Prompt{
		Id:         p.Id,
		UserId:     p.UserId,
		PromptName: p.PromptName,
		PromptText: p.PromptText,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *SettingsMapper) PromptToModel(p *entity.Prompt) *model.Prompt {
	if p == nil {
		return nil
	}
	return &model.Prompt{
		Id:         p.Id,
		UserId:     p.UserId,
		PromptName: p.PromptName,
		PromptText: p.PromptText,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *SettingsMapper) PromptsToEntities(prompts []*model.Prompt) []*entity.Prompt {
	out := make([]*entity.Prompt, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, m.PromptToEntity(p))
	}
	return out
}
