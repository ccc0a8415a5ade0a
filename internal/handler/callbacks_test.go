package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCallbackID(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		prefix        string
		expected      int64
		expectedError bool
	}{
		{
			name:     "vocabulary id",
			data:     "voc_42",
			prefix:   vocabularyPrefix,
			expected: 42,
		},
		{
			name:     "page with whitespace",
			data:     " page_3 ",
			prefix:   pagePrefix,
			expected: 3,
		},
		{
			name:          "wrong prefix",
			data:          "page_3",
			prefix:        vocabularyPrefix,
			expectedError: true,
		},
		{
			name:          "not a number",
			data:          "voc_abc",
			prefix:        vocabularyPrefix,
			expectedError: true,
		},
		{
			name:          "missing number",
			data:          "voc_",
			prefix:        vocabularyPrefix,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseCallbackID(tt.data, tt.prefix)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}
