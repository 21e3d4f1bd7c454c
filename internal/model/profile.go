package model

import "strings"

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AIResponseStyle controls how verbose assistant replies should be.
type AIResponseStyle string

const (
	AIStyleConcise  AIResponseStyle = "concise"
	AIStyleDetailed AIResponseStyle = "detailed"
)

// Profile is the 1:1 extension record for a user, holding both the editable
// profile fields (name, avatar) and the UI/AI settings. It is created lazily
// on first access, so at most one row exists per user.
type Profile struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"userId" gorm:"uniqueIndex;not null"`
	Name            string          `json:"name" gorm:"size:150"`
	AvatarURL       string          `json:"avatarUrl" gorm:"size:500"`
	Theme           Theme           `json:"theme" gorm:"type:varchar(10);not null;default:'light'"`
	Language        string          `json:"language" gorm:"size:8;not null;default:'en'"`
	AIResponseStyle AIResponseStyle `json:"aiResponseStyle" gorm:"type:varchar(10);not null;default:'concise'"`
}

// DefaultProfile returns the record created on first profile/settings access.
func DefaultProfile(userID uint) *Profile {
	return &Profile{
		UserID:          userID,
		Theme:           ThemeLight,
		Language:        "en",
		AIResponseStyle: AIStyleConcise,
	}
}

// ParseTheme validates a theme value case-insensitively.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// ParseAIResponseStyle validates a response style value case-insensitively.
func ParseAIResponseStyle(value string) (AIResponseStyle, bool) {
	switch AIResponseStyle(strings.ToLower(strings.TrimSpace(value))) {
	case AIStyleConcise:
		return AIStyleConcise, true
	case AIStyleDetailed:
		return AIStyleDetailed, true
	}
	return "", false
}
