package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get accessibility settings",
		Description: "Returns the caller's settings, or defaults if none were saved",
		Tags:        []string{"Settings"},
		Security:    bearerAuth,
	}, s.handleGetSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveSettings",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings",
		Summary:     "Save accessibility settings",
		Tags:        []string{"Settings"},
		Security:    bearerAuth,
	}, s.handleSaveSettings)
}

// SettingsRequest is the body of a save settings request.
type SettingsRequest struct {
	FontSize      string `json:"font_size,omitempty" doc:"normal, large, or xl. Defaults to normal."`
	HighContrast  bool   `json:"high_contrast,omitempty"`
	ReducedMotion bool   `json:"reduced_motion,omitempty"`
}

// SaveSettingsInput contains parameters for saving settings.
type SaveSettingsInput struct {
	Body SettingsRequest
}

// SettingsOutput wraps settings for Huma.
type SettingsOutput struct {
	Body *domain.UserSettings
}

func (s *Server) handleGetSettings(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.services.Settings.GetSettings(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &SettingsOutput{Body: settings}, nil
}

func (s *Server) handleSaveSettings(ctx context.Context, input *SaveSettingsInput) (*SettingsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.services.Settings.SaveSettings(ctx, identity, service.SettingsInput{
		FontSize:      domain.FontSize(input.Body.FontSize),
		HighContrast:  input.Body.HighContrast,
		ReducedMotion: input.Body.ReducedMotion,
	})
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &SettingsOutput{Body: settings}, nil
}
