package graph

import (
	"context"
	"errors"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

// currentUser resolves the session user set by the auth directive.
func currentUser(ctx context.Context) (*models.User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, errors.New("user not found")
	}
	user, err := models.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.PrepareGive()
	return user, nil
}

// registerUser scopes the new account to the caller's company.
func registerUser(ctx context.Context, input *models.NewUser) (*models.User, error) {
	if isAdmin, ok := utils.GetIsAdminFromContext(ctx); !ok || !isAdmin {
		return nil, errors.New("only an admin can register users")
	}
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	input.CompanyId = companyId
	if input.IsActive == nil {
		input.IsActive = utils.NewTrue()
	}
	return models.CreateUser(ctx, input)
}
