package domain

import (
	"strings"
	"time"
)

// TaskReportStatus represents where a task sits in the assignment lifecycle.
type TaskReportStatus string

// Possible task report status values
const (
	TaskStatusPendingAssignment   TaskReportStatus = "PENDING_ASSIGNMENT"
	TaskStatusAssigned            TaskReportStatus = "ASSIGNED"
	TaskStatusPendingReassignment TaskReportStatus = "PENDING_REASSIGNMENT"
)

// Task represents a to-do item with an assignment/completion lifecycle.
// Tasks are plain values: the transition methods below never mutate the
// receiver and always return a fresh copy.
type Task struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	AssignedUserID string           `json:"assigned_user_id,omitempty"`
	ReportStatus   TaskReportStatus `json:"report_status"`
	Done           bool             `json:"done"`
	DoneAt         *time.Time       `json:"done_at,omitempty"`
}

// NewTask creates a Task in PENDING_ASSIGNMENT status.
// Name and description are required and must not be blank.
func NewTask(id, name, description string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, NewValidationError("id", "cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return Task{}, NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return Task{}, NewValidationError("description", "cannot be empty")
	}

	return Task{
		ID:           id,
		Name:         name,
		Description:  description,
		ReportStatus: TaskStatusPendingAssignment,
	}, nil
}

// MarkAsDone returns a copy of the task flagged as completed at doneAt.
// Returns ErrTaskNotAssigned unless the task is currently ASSIGNED.
func (t Task) MarkAsDone(doneAt time.Time) (Task, error) {
	if t.ReportStatus != TaskStatusAssigned {
		return Task{}, ErrTaskNotAssigned
	}

	done := t
	done.Done = true
	done.DoneAt = &doneAt
	return done, nil
}

// AssignToUser returns a copy of the task assigned to the given user.
// Returns ErrTaskAlreadyAssigned if an assignee is already set.
func (t Task) AssignToUser(user User) (Task, error) {
	if t.AssignedUserID != "" {
		return Task{}, ErrTaskAlreadyAssigned
	}

	assigned := t
	assigned.AssignedUserID = user.ID
	assigned.ReportStatus = TaskStatusAssigned
	return assigned, nil
}

// SetPendingToReassign returns a copy of the task with the assignee cleared
// and status PENDING_REASSIGNMENT. It never fails.
func (t Task) SetPendingToReassign() Task {
	pending := t
	pending.AssignedUserID = ""
	pending.ReportStatus = TaskStatusPendingReassignment
	return pending
}
