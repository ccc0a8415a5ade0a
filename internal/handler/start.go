package handler

import (
	"errors"
	"fmt"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	"github.com/samber/lo"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const streakDepth = 5

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(errorText)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	h.ResetState(userID)

	if !authorized {
		return c.Send(passwordText)
	}

	if c.Callback() != nil {
		if err := c.Edit(mainMenuText, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(mainMenuText, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(mainMenuText, mainMenuMarkup())
}

// handleSpeak sets or shows the languages the user speaks
func (h *Handler) handleSpeak(c tele.Context) error {
	userID := c.Sender().ID
	codes := lo.Map(c.Args(), func(code string, _ int) string {
		return strings.ToLower(code)
	})

	if len(codes) == 0 {
		languages, err := h.authService.Languages(userID)
		if err != nil {
			h.logger.Error("Failed to get languages", zap.Error(err), zap.Int64("user_id", userID))
			return c.Send(errorText)
		}
		return c.Send(formatLanguages(languages))
	}

	languages, err := h.authService.SetLanguages(userID, codes)
	if errors.Is(err, service.ErrUnknownLanguage) {
		known := lo.Map(domain.Languages, func(l domain.Language, _ int) string { return l.Code })
		return c.Send(fmt.Sprintf("Unknown language. Known codes: %s", strings.Join(known, ", ")))
	}
	if err != nil {
		h.logger.Error("Failed to set languages", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	h.logger.Info("Languages updated", zap.Int64("user_id", userID), zap.Strings("languages", languages))
	return c.Send("✅ " + formatLanguages(languages))
}

// handleStats shows how reliable answer streaks are
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	stats, err := h.statsService.StreakReliability(userID, streakDepth)
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	return c.Send(formatStreaks(stats))
}
