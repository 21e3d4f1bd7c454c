// Package assistant holds the deterministic stand-in for the future AI
// provider integration. Replies are computed in-memory with no network
// calls, so callers must not assume any semantic understanding.
package assistant

import (
	"fmt"
	"strings"
)

const historyTitleMax = 80

// TaskRef is the minimal task view the assistant is given for context.
type TaskRef struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Reply composes the stub response for a message and optional task context.
// Identical inputs always produce the identical string.
func Reply(message string, tasks []TaskRef, apiKeyConfigured bool) string {
	intro := "Assistant (stub): "
	if apiKeyConfigured {
		intro = "Assistant (stub with OPENAI_API_KEY configured): "
	}

	var tasksSummary string
	if len(tasks) > 0 {
		titles := make([]string, 0, len(tasks))
		for _, task := range tasks {
			title := strings.TrimSpace(task.Title)
			if title == "" {
				title = fmt.Sprintf("Task #%d", task.ID)
			}
			titles = append(titles, title)
		}
		tasksSummary = fmt.Sprintf(" Relevant tasks: %s.", strings.Join(titles, ", "))
	}

	return intro + strings.TrimSpace(message) + tasksSummary
}

// HistoryTitle derives a compact history title from the original message:
// whitespace collapsed, capped at 80 characters, with a placeholder for
// empty messages.
func HistoryTitle(message string) string {
	normalized := strings.Join(strings.Fields(message), " ")
	// Truncate on rune boundaries; a byte slice could split a multi-byte
	// character and store invalid UTF-8.
	if runes := []rune(normalized); len(runes) > historyTitleMax {
		normalized = string(runes[:historyTitleMax])
	}
	if normalized == "" {
		return "AI Assistant Conversation"
	}
	return normalized
}
