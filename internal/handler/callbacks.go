package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	vocabularyPrefix = "voc_"
	pagePrefix       = "page_"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallbackID reads the number following prefix in callback data
func parseCallbackID(data, prefix string) (int64, error) {
	data = strings.TrimSpace(data)
	if !strings.HasPrefix(data, prefix) {
		return 0, fmt.Errorf("callback data %q does not start with %q", data, prefix)
	}
	return strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the message of a callback, or sends a new one for commands
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose Unique did not come through
	key := callback.Unique
	if key == "" {
		key = data
	}
	switch key {
	case btnVocabularies.Unique:
		return h.handleVocabularies(c)
	case btnViewDays.Unique:
		return h.handleViewDays(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnBack.Unique, btnMainMenu.Unique:
		return h.handleStart(c)
	}

	// Dynamic buttons
	switch {
	case strings.HasPrefix(data, pagePrefix):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, vocabularyPrefix):
		return h.handleVocabularySelection(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleVocabularies lists the vocabularies offered to the user,
// least mastered first
func (h *Handler) handleVocabularies(c tele.Context) error {
	userID := c.Sender().ID

	vocabularies, err := h.vocService.ListForUser(userID)
	if err != nil {
		h.logger.Error("Failed to list vocabularies", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load vocabularies"})
	}

	if len(vocabularies) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "No vocabulary for your languages yet. Upload a .txt file or use /speak",
			ShowAlert: true,
		})
	}

	accuracies, err := h.sessionService.LastAccuracies(userID)
	if err != nil {
		h.logger.Warn("Failed to load last accuracies", zap.Error(err), zap.Int64("user_id", userID))
	}

	entries := make([]vocabularyEntry, 0, len(vocabularies))
	for _, v := range vocabularies {
		entry := vocabularyEntry{Vocabulary: v}
		if accuracy, ok := accuracies[v.ID]; ok {
			entry.Accuracy = &accuracy
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(entries)+1)
	for _, entry := range entries {
		btn := markup.Data(entry.buttonText(), vocabularyPrefix+strconv.FormatInt(entry.Vocabulary.ID, 10))
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.editOrSend(c, "📚 Your vocabularies:", markup)
}

// handleVocabularySelection resumes or starts a session over the chosen vocabulary
func (h *Handler) handleVocabularySelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	vocabularyID, err := parseCallbackID(data, vocabularyPrefix)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown vocabulary"})
	}

	session, err := h.sessionService.Open(userID, vocabularyID)
	if errors.Is(err, service.ErrVocabularyNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown vocabulary"})
	}
	if err != nil {
		h.logger.Error("Failed to open session",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("vocabulary_id", vocabularyID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Failed to start learning"})
	}

	current := session.CurrentWord()
	if current == nil {
		return c.Respond(&tele.CallbackResponse{Text: "This vocabulary is empty", ShowAlert: true})
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateLearning,
		SessionID: session.ID,
	})

	text := fmt.Sprintf("📖 %s\n%s\n\n%s",
		formatVocabularyName(session.Vocabulary()),
		formatProgress(session.Vocabulary().Len(), len(session.Outstanding())),
		formatPrompt(*current),
	)
	return h.editOrSend(c, text, learningMarkup())
}

// handleViewDays shows the days the user answered words
func (h *Handler) handleViewDays(c tele.Context) error {
	return h.showDays(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	page, err := parseCallbackID(data, pagePrefix)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showDays(c, int(page))
}

func (h *Handler) showDays(c tele.Context, page int) error {
	userID := c.Sender().ID
	if page < 1 {
		page = 1
	}

	days, totalPages, err := h.statsService.GetDaysList(userID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load activity"})
	}

	if len(days) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "No answers yet",
			ShowAlert: true,
		})
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", pagePrefix, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", pagePrefix, page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.editOrSend(c, formatDays(days), markup)
}

// handleCancel leaves the current session and shows the main menu
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}
