package middleware

import (
	"errors"
	"testing"

	"wordtrainer/internal/service"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	text string
	sent []interface{}
}

func (f *fakeContext) Sender() *tele.User       { return &tele.User{ID: 123} }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Callback() *tele.Callback { return nil }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		authorized   bool
		authError    error
		expectNext   bool
		expectedSent []interface{}
	}{
		{
			name:       "authorized user passes",
			text:       "/speak fr",
			authorized: true,
			expectNext: true,
		},
		{
			name:         "unauthorized user is asked for the password",
			text:         "/speak fr",
			authorized:   false,
			expectNext:   false,
			expectedSent: []interface{}{"Hi! Send the password to start learning:"},
		},
		{
			name:       "start is always allowed",
			text:       "/start",
			authorized: false,
			expectNext: true,
		},
		{
			name:         "database error",
			text:         "/speak fr",
			authError:    errors.New("db error"),
			expectNext:   false,
			expectedSent: []interface{}{"Something went wrong. Please try again later."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("EnsureUserExists", int64(123)).Return(nil)
			mockRepo.On("IsAuthorized", int64(123)).Return(tt.authorized, tt.authError)

			authService := service.NewAuthService(mockRepo, "")
			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			c := &fakeContext{text: tt.text}
			err := AuthMiddleware(authService, testutil.NewTestLogger())(next)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			assert.Equal(t, tt.expectedSent, c.sent)
			mockRepo.AssertExpectations(t)
		})
	}
}
