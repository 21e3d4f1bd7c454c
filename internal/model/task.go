package model

import (
	"strings"
	"time"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task represents a to-do item belonging to a single user. Only the owner
// may read, mutate or delete it.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	UserID      uint         `json:"userId" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description string       `json:"description" gorm:"type:text"`
	DueDate     *Date        `json:"dueDate" gorm:"type:date"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(12);not null;default:'todo'"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ParsePriority normalizes a free-form value against the priority choice
// set, case-insensitively. Returns false for anything outside the set.
func ParsePriority(value string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(value))) {
	case TaskPriorityLow:
		return TaskPriorityLow, true
	case TaskPriorityMedium:
		return TaskPriorityMedium, true
	case TaskPriorityHigh:
		return TaskPriorityHigh, true
	}
	return "", false
}

// ParseStatus normalizes a free-form value against the status choice set,
// case-insensitively. Returns false for anything outside the set.
func ParseStatus(value string) (TaskStatus, bool) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(value))) {
	case TaskStatusTodo:
		return TaskStatusTodo, true
	case TaskStatusInProgress:
		return TaskStatusInProgress, true
	case TaskStatusCompleted:
		return TaskStatusCompleted, true
	}
	return "", false
}
