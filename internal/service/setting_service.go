package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

type SettingService struct {
	settingRepo repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string, len(settingsList))
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// GetPublicSettings returns only the keys unauthenticated clients may read.
func (s *SettingService) GetPublicSettings(ctx context.Context) (map[string]string, error) {
	all, err := s.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	public := make(map[string]string, len(model.PublicSettingKeys))
	for key, value := range all {
		if model.IsPublicSetting(key) {
			public[key] = value
		}
	}
	return public, nil
}

// UpdateSettings writes every pair in one transaction and returns the
// resulting configuration.
func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) (map[string]string, error) {
	if err := s.settingRepo.UpsertMany(ctx, settingsMap); err != nil {
		s.log.Error().Err(err).Int("keys", len(settingsMap)).Msg("failed to update settings")
		return nil, fmt.Errorf("update settings: %w", err)
	}
	s.log.Info().Int("keys", len(settingsMap)).Msg("settings updated")
	return s.GetAllSettings(ctx)
}

func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}
