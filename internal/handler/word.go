package handler

import (
	"errors"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	// If not authorized, check password
	if !authorized {
		return h.handlePassword(c, userID, text)
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateLearning:
		return h.handleGuess(c, userID, state.SessionID, text)

	default:
		return c.Send(mainMenuText, mainMenuMarkup())
	}
}

func (h *Handler) handlePassword(c tele.Context, userID int64, password string) error {
	err := h.authService.CheckPassword(password)
	if errors.Is(err, service.ErrWrongPassword) {
		return c.Send("Wrong password")
	}
	if err != nil {
		h.logger.Error("Failed to check password", zap.Error(err))
		return c.Send(errorText)
	}

	if err := h.authService.AuthorizeUser(userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(errorText)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send(
		"✅ Access granted!\n\nTell me which languages you speak with /speak, e.g. /speak fr en\n\n"+mainMenuText,
		mainMenuMarkup(),
	)
}

// handleGuess checks an answer and asks the next word
func (h *Handler) handleGuess(c tele.Context, userID, sessionID int64, typed string) error {
	result, err := h.sessionService.Guess(sessionID, typed)
	if errors.Is(err, service.ErrSessionFinished) || errors.Is(err, service.ErrSessionNotFound) {
		h.ResetState(userID)
		return c.Send("This session is over.\n\n"+mainMenuText, mainMenuMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to process guess",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("session_id", sessionID),
		)
		return c.Send(errorText)
	}

	reply := formatGuess(result)

	if result.Finished {
		h.ResetState(userID)
		return c.Send(reply+"\n\n"+formatSummary(result), mainMenuMarkup())
	}

	return c.Send(reply+"\n\n"+formatPrompt(*result.Next), learningMarkup())
}
