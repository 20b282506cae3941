package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string) (*dto.CurrentUser, string, error)
}

// RequiredAuth resolves the bearer token to a user before the handler runs.
// Failures go to the app error handler, which answers 401 with the login
// redirect.
func RequiredAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, token, err := auth.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.User, user)
		c.Locals(shared.Token, token)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequiredAuth.
func CurrentUser(c *fiber.Ctx) (*dto.CurrentUser, bool) {
	user, ok := c.Locals(shared.User).(*dto.CurrentUser)
	return user, ok && user != nil
}

func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(shared.Token).(string)
	return token
}
