package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStudySessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions",
		Summary:     "List study sessions",
		Tags:        []string{"Sessions"},
		Security:    bearerAuth,
	}, s.handleGetStudySessions)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addStudySession",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Add study session",
		Tags:          []string{"Sessions"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusCreated,
	}, s.handleAddStudySession)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteStudySession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions",
		Summary:     "Delete study sessions by subject",
		Description: "Removes every session recorded under the subject",
		Tags:        []string{"Sessions"},
		Security:    bearerAuth,
	}, s.handleDeleteStudySessionsBySubject)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteStudySessionById",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Delete one study session",
		Tags:        []string{"Sessions"},
		Security:    bearerAuth,
	}, s.handleDeleteStudySessionByID)
}

// === DTOs ===

// StudySessionRequest is the body of an add session request.
type StudySessionRequest struct {
	Subject         string  `json:"subject" maxLength:"200" doc:"What was studied"`
	Date            string  `json:"date" doc:"Day of the session, YYYY-MM-DD"`
	DurationMinutes int     `json:"duration_minutes" doc:"Minutes studied, 1 to 1440"`
	Notes           *string `json:"notes,omitempty" maxLength:"2000" doc:"Optional notes"`
}

// AddStudySessionInput contains parameters for adding a session.
type AddStudySessionInput struct {
	Body StudySessionRequest
}

// DeleteBySubjectInput addresses sessions by subject.
type DeleteBySubjectInput struct {
	Subject string `query:"subject" required:"true" doc:"Subject whose sessions are removed"`
}

// SessionIDInput addresses one session.
type SessionIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// StudySessionOutput wraps a session for Huma.
type StudySessionOutput struct {
	Body *domain.StudySession
}

// StudySessionsResponse lists sessions.
type StudySessionsResponse struct {
	Sessions []*domain.StudySession `json:"sessions"`
}

// StudySessionsOutput wraps StudySessionsResponse for Huma.
type StudySessionsOutput struct {
	Body StudySessionsResponse
}

// === Handlers ===

func (s *Server) handleGetStudySessions(ctx context.Context, _ *struct{}) (*StudySessionsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Sessions.GetStudySessions(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &StudySessionsOutput{Body: StudySessionsResponse{Sessions: sessions}}, nil
}

func (s *Server) handleAddStudySession(ctx context.Context, input *AddStudySessionInput) (*StudySessionOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.services.Sessions.AddStudySession(ctx, identity, service.StudySessionInput{
		Subject:         input.Body.Subject,
		Date:            input.Body.Date,
		DurationMinutes: input.Body.DurationMinutes,
		Notes:           input.Body.Notes,
	})
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &StudySessionOutput{Body: session}, nil
}

func (s *Server) handleDeleteStudySessionsBySubject(ctx context.Context, input *DeleteBySubjectInput) (*DeleteOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Sessions.DeleteStudySession(ctx, identity, input.Subject)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return deleted(n), nil
}

func (s *Server) handleDeleteStudySessionByID(ctx context.Context, input *SessionIDInput) (*DeleteOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Sessions.DeleteStudySessionByID(ctx, identity, pathKey(input.ID)); err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return deleted(1), nil
}
