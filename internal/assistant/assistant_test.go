package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name             string
		message          string
		tasks            []TaskRef
		apiKeyConfigured bool
		expected         string
	}{
		{
			name:     "plain message without tasks",
			message:  "What should I do today?",
			expected: "Assistant (stub): What should I do today?",
		},
		{
			name:     "message is trimmed",
			message:  "  help me plan  ",
			expected: "Assistant (stub): help me plan",
		},
		{
			name:             "api key changes the preamble",
			message:          "hello",
			apiKeyConfigured: true,
			expected:         "Assistant (stub with OPENAI_API_KEY configured): hello",
		},
		{
			name:    "task titles are appended",
			message: "prioritize",
			tasks: []TaskRef{
				{ID: 1, Title: "Buy groceries", Status: "todo"},
				{ID: 2, Title: "Write report", Status: "in-progress"},
			},
			expected: "Assistant (stub): prioritize Relevant tasks: Buy groceries, Write report.",
		},
		{
			name:    "blank title falls back to task number",
			message: "prioritize",
			tasks: []TaskRef{
				{ID: 7, Title: "   ", Status: "todo"},
				{ID: 3, Title: "Ship release", Status: "todo"},
			},
			expected: "Assistant (stub): prioritize Relevant tasks: Task #7, Ship release.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reply(tt.message, tt.tasks, tt.apiKeyConfigured))
		})
	}
}

func TestReply_Deterministic(t *testing.T) {
	tasks := []TaskRef{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	first := Reply("same input", tasks, false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Reply("same input", tasks, false))
	}
}

func TestHistoryTitle(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"simple message", "Plan my week", "Plan my week"},
		{"whitespace collapsed", "  Plan \n my\tweek  ", "Plan my week"},
		{"empty message gets placeholder", "   ", "AI Assistant Conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HistoryTitle(tt.message))
		})
	}
}

func TestHistoryTitle_CapsAt80(t *testing.T) {
	long := strings.Repeat("x ", 100)
	title := HistoryTitle(long)
	assert.Len(t, title, 80)
	assert.Equal(t, strings.Join(strings.Fields(long), " ")[:80], title)
}

func TestHistoryTitle_CapsOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("é", 100)
	title := HistoryTitle(long)
	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 80, utf8.RuneCountInString(title))
	assert.Equal(t, strings.Repeat("é", 80), title)
}
