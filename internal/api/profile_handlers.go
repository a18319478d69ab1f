package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCallerUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get own profile",
		Description: "Returns the caller's profile, or null when none has been saved",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, s.handleGetCallerProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveCallerUserProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Save own profile",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, s.handleSaveCallerProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{identity}",
		Summary:     "Get a user's profile",
		Description: "Returns another identity's profile, or null when none has been saved",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, s.handleGetUserProfile)
}

// === DTOs ===

// ProfileRequest is the body of a save profile request.
type ProfileRequest struct {
	Name string `json:"name" maxLength:"100" doc:"Display name"`
}

// SaveProfileInput contains parameters for saving a profile.
type SaveProfileInput struct {
	Body ProfileRequest
}

// UserProfileInput addresses another identity.
type UserProfileInput struct {
	Identity string `path:"identity" doc:"Identity whose profile is requested"`
}

// ProfileResponse holds a profile that may not exist.
type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// ProfileOutput wraps ProfileResponse for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// === Handlers ===

func (s *Server) handleGetCallerProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profiles.GetCallerProfile(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ProfileOutput{Body: ProfileResponse{Profile: profile}}, nil
}

func (s *Server) handleSaveCallerProfile(ctx context.Context, input *SaveProfileInput) (*ProfileOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profiles.SaveCallerProfile(ctx, identity, service.ProfileInput{Name: input.Body.Name})
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ProfileOutput{Body: ProfileResponse{Profile: profile}}, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *UserProfileInput) (*ProfileOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profiles.GetUserProfile(ctx, identity, pathKey(input.Identity))
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ProfileOutput{Body: ProfileResponse{Profile: profile}}, nil
}
