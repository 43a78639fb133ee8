package directives

import (
	"context"
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"gorm.io/gorm"
)

// paths a cashier may call; managers and admins are allowed everything
var cashierPaths = map[string]bool{
	"query.products":         true,
	"query.paginateProducts": true,
	"query.clientSuppliers":  true,
	"query.sale":             true,
	"query.paginateSales":    true,
	"query.openTill":         true,
	"query.till":             true,
	"query.summarizeTill":    true,
	"query.payments":         true,
	"mutation.logout":        true,
	"mutation.createSale":    true,
	"mutation.openTill":      true,
	"mutation.closeTill":     true,
	"mutation.recordPayment": true,
	"mutation.cancelPayment": true,
}

// retrieve user from redis or db
func getUser(username string, ctx context.Context) (*models.User, error) {
	var user models.User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}

	if !exists {

		db := config.GetDB()
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return nil, err
		}

		tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
		if err != nil {
			tokenLifespan = 24
		}

		if err := config.SetRedisObject("User:"+user.Username, &user, time.Duration(tokenLifespan)*time.Hour); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func Auth(ctx context.Context, obj interface{}, next graphql.Resolver) (interface{}, error) {

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, &gqlerror.Error{
			Message: "Access Denied",
		}
	}

	user, err := getUser(username, ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// destroy current session if user has been deleted
			models.Logout(ctx)
		}
		return nil, &gqlerror.Error{
			Message: err.Error(),
		}
	}
	if !*user.IsActive {
		return nil, &gqlerror.Error{
			Message: "User is disabled",
		}
	}

	if user.Role == models.UserRoleCashier {
		gqlpath := graphql.GetPath(ctx).String()
		if allowed := cashierPaths[gqlpath]; !allowed {
			return nil, &gqlerror.Error{
				Message: "Unauthorized",
			}
		}
	}

	ctx = context.WithValue(ctx, utils.ContextKeyCompanyId, user.CompanyId)
	ctx = context.WithValue(ctx, utils.ContextKeyUserId, user.ID)
	ctx = context.WithValue(ctx, utils.ContextKeyUserName, user.Name)
	ctx = utils.SetIsAdminInContext(ctx, user.Role == models.UserRoleAdmin)

	return next(ctx)
}
