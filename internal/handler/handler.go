package handler

import (
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	authService    *service.AuthService
	vocService     *service.VocabularyService
	sessionService *service.SessionService
	statsService   *service.StatsService
	logger         *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocService *service.VocabularyService,
	sessionService *service.SessionService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		authService:    authService,
		vocService:     vocService,
		sessionService: sessionService,
		statsService:   statsService,
		logger:         logger,
		states:         make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages are either the password or a guess
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything else needs an authorized user
	authorized := h.bot.Group()
	authorized.Use(middleware.AuthMiddleware(h.authService, h.logger))
	authorized.Handle("/speak", h.handleSpeak)
	authorized.Handle("/stats", h.handleStats)
	authorized.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	authorized.Handle(&btnVocabularies, h.handleVocabularies)
	authorized.Handle(&btnViewDays, h.handleViewDays)
	authorized.Handle(&btnCancel, h.handleCancel)
	authorized.Handle(&btnBack, h.handleStart)
	authorized.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	authorized.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnVocabularies = tele.Btn{
		Unique: "vocabularies",
		Text:   "📚 Vocabularies",
	}
	btnViewDays = tele.Btn{
		Unique: "view_days",
		Text:   "📅 Activity",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

const (
	mainMenuText = "🏠 Main menu\n\nPick an action:"
	errorText    = "Something went wrong. Please try again later."
	passwordText = "Hi! Send the password to start learning:"
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnVocabularies),
		menu.Row(btnViewDays),
	)
	return menu
}

// learningMarkup lets the user leave a session
func learningMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
