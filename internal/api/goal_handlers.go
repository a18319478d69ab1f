package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerGoalRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getGoals",
		Method:      http.MethodGet,
		Path:        "/api/v1/goals",
		Summary:     "List goals",
		Description: "Returns the caller's goals in the order they were created",
		Tags:        []string{"Goals"},
		Security:    bearerAuth,
	}, s.handleGetGoals)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addGoal",
		Method:        http.MethodPost,
		Path:          "/api/v1/goals",
		Summary:       "Add goal",
		Description:   "Creates a goal. Titles are unique per caller.",
		Tags:          []string{"Goals"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusCreated,
	}, s.handleAddGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateGoal",
		Method:      http.MethodPut,
		Path:        "/api/v1/goals/{title}",
		Summary:     "Update goal",
		Description: "Replaces a goal. The title cannot change.",
		Tags:        []string{"Goals"},
		Security:    bearerAuth,
	}, s.handleUpdateGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteGoal",
		Method:      http.MethodDelete,
		Path:        "/api/v1/goals/{title}",
		Summary:     "Delete goal",
		Tags:        []string{"Goals"},
		Security:    bearerAuth,
	}, s.handleDeleteGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "markGoalComplete",
		Method:      http.MethodPost,
		Path:        "/api/v1/goals/{title}/complete",
		Summary:     "Mark goal complete",
		Description: "Marks a goal completed. Repeating the call has no further effect.",
		Tags:        []string{"Goals"},
		Security:    bearerAuth,
	}, s.handleMarkGoalComplete)
}

// === DTOs ===

// GoalRequest is the body of add and update goal requests.
type GoalRequest struct {
	Title       string `json:"title,omitempty" maxLength:"200" doc:"Goal title, unique per caller. Optional on update."`
	Description string `json:"description,omitempty" maxLength:"2000" doc:"Free-form description"`
	Category    string `json:"category,omitempty" maxLength:"100" doc:"Category, e.g. Math or Science. Defaults to Other."`
	Priority    string `json:"priority,omitempty" doc:"low, medium, or high. Defaults to medium."`
	TargetDate  string `json:"target_date,omitempty" doc:"Target date, YYYY-MM-DD"`
	Completed   *bool  `json:"completed,omitempty" doc:"Update only. Omit to keep the current value."`
}

func (r GoalRequest) toInput() service.GoalInput {
	return service.GoalInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    domain.Priority(r.Priority),
		TargetDate:  r.TargetDate,
		Completed:   r.Completed,
	}
}

// AddGoalInput contains parameters for adding a goal.
type AddGoalInput struct {
	Body GoalRequest
}

// UpdateGoalInput contains parameters for updating a goal.
type UpdateGoalInput struct {
	Title string `path:"title" doc:"Title of the goal to replace"`
	Body  GoalRequest
}

// GoalTitleInput addresses a goal by title.
type GoalTitleInput struct {
	Title string `path:"title" doc:"Goal title"`
}

// GoalOutput wraps a goal for Huma.
type GoalOutput struct {
	Body *domain.Goal
}

// GoalsResponse lists goals.
type GoalsResponse struct {
	Goals []*domain.Goal `json:"goals"`
}

// GoalsOutput wraps GoalsResponse for Huma.
type GoalsOutput struct {
	Body GoalsResponse
}

// === Handlers ===

func (s *Server) handleGetGoals(ctx context.Context, _ *struct{}) (*GoalsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := s.services.Goals.GetGoals(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &GoalsOutput{Body: GoalsResponse{Goals: goals}}, nil
}

func (s *Server) handleAddGoal(ctx context.Context, input *AddGoalInput) (*GoalOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := s.services.Goals.AddGoal(ctx, identity, input.Body.toInput())
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &GoalOutput{Body: goal}, nil
}

func (s *Server) handleUpdateGoal(ctx context.Context, input *UpdateGoalInput) (*GoalOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := s.services.Goals.UpdateGoal(ctx, identity, pathKey(input.Title), input.Body.toInput())
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &GoalOutput{Body: goal}, nil
}

func (s *Server) handleDeleteGoal(ctx context.Context, input *GoalTitleInput) (*DeleteOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Goals.DeleteGoal(ctx, identity, pathKey(input.Title)); err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return deleted(1), nil
}

func (s *Server) handleMarkGoalComplete(ctx context.Context, input *GoalTitleInput) (*GoalOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := s.services.Goals.MarkGoalComplete(ctx, identity, pathKey(input.Title))
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &GoalOutput{Body: goal}, nil
}
