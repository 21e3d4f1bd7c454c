package model

import "time"

// User represents an authenticated account. Deleting a user cascades to the
// tasks, AI history and profile rows it owns.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"firstName" gorm:"size:150"`
	LastName     string    `json:"lastName" gorm:"size:150"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Tasks   []Task      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	History []AIHistory `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Profile *Profile    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// DisplayName returns the name shown to the frontend: the profile name when
// set, else the first/last split, else the email.
func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.Name != "" {
		return u.Profile.Name
	}
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}
