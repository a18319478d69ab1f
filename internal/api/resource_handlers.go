package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerResourceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getResources",
		Method:      http.MethodGet,
		Path:        "/api/v1/resources",
		Summary:     "List resources",
		Tags:        []string{"Resources"},
		Security:    bearerAuth,
	}, s.handleGetResources)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addResource",
		Method:        http.MethodPost,
		Path:          "/api/v1/resources",
		Summary:       "Add resource",
		Description:   "Saves a learning link. Titles are unique per caller.",
		Tags:          []string{"Resources"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusCreated,
	}, s.handleAddResource)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateResource",
		Method:      http.MethodPut,
		Path:        "/api/v1/resources/{title}",
		Summary:     "Update resource",
		Tags:        []string{"Resources"},
		Security:    bearerAuth,
	}, s.handleUpdateResource)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteResource",
		Method:      http.MethodDelete,
		Path:        "/api/v1/resources/{title}",
		Summary:     "Delete resource",
		Tags:        []string{"Resources"},
		Security:    bearerAuth,
	}, s.handleDeleteResource)
}

// === DTOs ===

// ResourceRequest is the body of add and update resource requests.
type ResourceRequest struct {
	Title    string  `json:"title,omitempty" maxLength:"200" doc:"Resource title, unique per caller. Optional on update."`
	URL      string  `json:"url,omitempty" maxLength:"2048" doc:"http or https link"`
	Category string  `json:"category,omitempty" maxLength:"100" doc:"Category. Defaults to Other."`
	Notes    *string `json:"notes,omitempty" maxLength:"2000" doc:"Optional notes"`
}

func (r ResourceRequest) toInput() service.ResourceInput {
	return service.ResourceInput{
		Title:    r.Title,
		URL:      r.URL,
		Category: r.Category,
		Notes:    r.Notes,
	}
}

// AddResourceInput contains parameters for adding a resource.
type AddResourceInput struct {
	Body ResourceRequest
}

// UpdateResourceInput contains parameters for updating a resource.
type UpdateResourceInput struct {
	Title string `path:"title" doc:"Title of the resource to replace"`
	Body  ResourceRequest
}

// ResourceTitleInput addresses a resource by title.
type ResourceTitleInput struct {
	Title string `path:"title" doc:"Resource title"`
}

// ResourceOutput wraps a resource for Huma.
type ResourceOutput struct {
	Body *domain.Resource
}

// ResourcesResponse lists resources.
type ResourcesResponse struct {
	Resources []*domain.Resource `json:"resources"`
}

// ResourcesOutput wraps ResourcesResponse for Huma.
type ResourcesOutput struct {
	Body ResourcesResponse
}

// === Handlers ===

func (s *Server) handleGetResources(ctx context.Context, _ *struct{}) (*ResourcesOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	resources, err := s.services.Resources.GetResources(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ResourcesOutput{Body: ResourcesResponse{Resources: resources}}, nil
}

func (s *Server) handleAddResource(ctx context.Context, input *AddResourceInput) (*ResourceOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	resource, err := s.services.Resources.AddResource(ctx, identity, input.Body.toInput())
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ResourceOutput{Body: resource}, nil
}

func (s *Server) handleUpdateResource(ctx context.Context, input *UpdateResourceInput) (*ResourceOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	resource, err := s.services.Resources.UpdateResource(ctx, identity, pathKey(input.Title), input.Body.toInput())
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &ResourceOutput{Body: resource}, nil
}

func (s *Server) handleDeleteResource(ctx context.Context, input *ResourceTitleInput) (*DeleteOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Resources.DeleteResource(ctx, identity, pathKey(input.Title)); err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return deleted(1), nil
}
