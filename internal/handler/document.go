package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"wordtrainer/internal/vocabfile"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDocument imports an uploaded vocabulary file
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	if !strings.EqualFold(filepath.Ext(doc.FileName), ".txt") {
		return c.Send("Send vocabularies as .txt files")
	}

	reader, err := c.Bot().File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download vocabulary", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}
	defer reader.Close()

	v, err := h.vocService.Import(reader)
	if err != nil {
		var formatErr *vocabfile.FormatError
		if errors.As(err, &formatErr) {
			return c.Send(fmt.Sprintf("❌ %s: line %d is invalid: %s", doc.FileName, formatErr.Line, formatErr.Text))
		}
		h.logger.Warn("Failed to import vocabulary",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("file", doc.FileName),
		)
		return c.Send(fmt.Sprintf("❌ Could not import %s: %v", doc.FileName, err))
	}

	return c.Send(fmt.Sprintf("✅ Imported %s", formatVocabularyName(v)), mainMenuMarkup())
}
