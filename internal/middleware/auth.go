package middleware

import (
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthMiddleware lets only authorized users through; others are asked for the password
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			if !authorized && c.Text() != "/start" {
				logger.Debug("Unauthorized request", zap.Int64("user_id", userID))
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Send the password first"})
				}
				return c.Send("Hi! Send the password to start learning:")
			}

			return next(c)
		}
	}
}
