package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
)

func (s *Server) registerRoleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCallerUserRole",
		Method:      http.MethodGet,
		Path:        "/api/v1/roles/me",
		Summary:     "Get own role",
		Description: "Returns the caller's role. Identities never assigned a role are users.",
		Tags:        []string{"Roles"},
		Security:    bearerAuth,
	}, s.handleGetCallerRole)

	huma.Register(s.api, huma.Operation{
		OperationID: "isCallerAdmin",
		Method:      http.MethodGet,
		Path:        "/api/v1/roles/me/admin",
		Summary:     "Check admin",
		Tags:        []string{"Roles"},
		Security:    bearerAuth,
	}, s.handleIsCallerAdmin)

	huma.Register(s.api, huma.Operation{
		OperationID: "assignCallerUserRole",
		Method:      http.MethodPut,
		Path:        "/api/v1/roles/{identity}",
		Summary:     "Assign role",
		Description: "Sets the role of an identity. Admin only.",
		Tags:        []string{"Roles"},
		Security:    bearerAuth,
	}, s.handleAssignRole)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRoleAssignments",
		Method:      http.MethodGet,
		Path:        "/api/v1/roles",
		Summary:     "List role assignments",
		Description: "Lists every explicitly stored role. Admin only.",
		Tags:        []string{"Roles"},
		Security:    bearerAuth,
	}, s.handleListRoleAssignments)
}

// === DTOs ===

// RoleResponse is an identity and its effective role.
type RoleResponse struct {
	Identity string      `json:"identity"`
	Role     domain.Role `json:"role" enum:"admin,user,guest"`
}

// RoleOutput wraps RoleResponse for Huma.
type RoleOutput struct {
	Body RoleResponse
}

// IsAdminResponse answers the admin check.
type IsAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// IsAdminOutput wraps IsAdminResponse for Huma.
type IsAdminOutput struct {
	Body IsAdminResponse
}

// AssignRoleRequest is the body of an assign role request.
type AssignRoleRequest struct {
	Role string `json:"role" doc:"admin, user, or guest"`
}

// AssignRoleInput contains parameters for assigning a role.
type AssignRoleInput struct {
	Identity string `path:"identity" doc:"Identity receiving the role"`
	Body     AssignRoleRequest
}

// AssignmentOutput wraps a stored assignment for Huma.
type AssignmentOutput struct {
	Body *domain.RoleAssignment
}

// AssignmentsResponse lists stored assignments.
type AssignmentsResponse struct {
	Assignments []*domain.RoleAssignment `json:"assignments"`
}

// AssignmentsOutput wraps AssignmentsResponse for Huma.
type AssignmentsOutput struct {
	Body AssignmentsResponse
}

// === Handlers ===

func (s *Server) handleGetCallerRole(ctx context.Context, _ *struct{}) (*RoleOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	role, err := s.services.Roles.CallerRole(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &RoleOutput{Body: RoleResponse{Identity: identity, Role: role}}, nil
}

func (s *Server) handleIsCallerAdmin(ctx context.Context, _ *struct{}) (*IsAdminOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.services.Roles.IsAdmin(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &IsAdminOutput{Body: IsAdminResponse{IsAdmin: isAdmin}}, nil
}

func (s *Server) handleAssignRole(ctx context.Context, input *AssignRoleInput) (*AssignmentOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	assignment, err := s.services.Roles.AssignRole(ctx, identity, pathKey(input.Identity), domain.Role(input.Body.Role))
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &AssignmentOutput{Body: assignment}, nil
}

func (s *Server) handleListRoleAssignments(ctx context.Context, _ *struct{}) (*AssignmentsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.services.Roles.ListAssignments(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &AssignmentsOutput{Body: AssignmentsResponse{Assignments: assignments}}, nil
}
