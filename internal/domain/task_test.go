package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	task, err := NewTask("task-1", "Buy groceries", "Milk, eggs, bread")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.ID != "task-1" {
		t.Errorf("Expected ID task-1, got %s", task.ID)
	}
	if task.ReportStatus != TaskStatusPendingAssignment {
		t.Errorf("Expected status %s, got %s", TaskStatusPendingAssignment, task.ReportStatus)
	}
	if task.Done {
		t.Error("Expected a new task to not be done")
	}
	if task.AssignedUserID != "" {
		t.Errorf("Expected no assignee, got %s", task.AssignedUserID)
	}

	// Required fields
	if _, err := NewTask("task-1", "", "desc"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty name, got %v", err)
	}
	if _, err := NewTask("task-1", "name", "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for blank description, got %v", err)
	}
	if _, err := NewTask("", "name", "desc"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty id, got %v", err)
	}
}

func TestMarkAsDone(t *testing.T) {
	t.Parallel()
	doneAt := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assigned := Task{
		ID:             "task-1",
		Name:           "Buy groceries",
		Description:    "Milk, eggs, bread",
		AssignedUserID: "user-56",
		ReportStatus:   TaskStatusAssigned,
	}

	done, err := assigned.MarkAsDone(doneAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !done.Done {
		t.Error("Expected done flag to be set")
	}
	if done.DoneAt == nil || !done.DoneAt.Equal(doneAt) {
		t.Errorf("Expected DoneAt %v, got %v", doneAt, done.DoneAt)
	}

	// Input must not be mutated
	if assigned.Done || assigned.DoneAt != nil {
		t.Error("MarkAsDone mutated its input")
	}

	// Every non-ASSIGNED status fails
	for _, status := range []TaskReportStatus{TaskStatusPendingAssignment, TaskStatusPendingReassignment} {
		notAssigned := assigned
		notAssigned.ReportStatus = status
		if _, err := notAssigned.MarkAsDone(doneAt); !errors.Is(err, ErrTaskNotAssigned) {
			t.Errorf("Expected ErrTaskNotAssigned for status %s, got %v", status, err)
		}
	}
}

func TestAssignToUser(t *testing.T) {
	t.Parallel()
	user := User{ID: "user-56", Name: "Daniel", LastName: "Ospina"}
	pending := Task{
		ID:           "task-1",
		Name:         "Buy groceries",
		Description:  "Milk, eggs, bread",
		ReportStatus: TaskStatusPendingAssignment,
	}

	assigned, err := pending.AssignToUser(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if assigned.AssignedUserID != user.ID {
		t.Errorf("Expected assignee %s, got %s", user.ID, assigned.AssignedUserID)
	}
	if assigned.ReportStatus != TaskStatusAssigned {
		t.Errorf("Expected status %s, got %s", TaskStatusAssigned, assigned.ReportStatus)
	}
	if assigned == pending {
		t.Error("AssignToUser returned its input unchanged")
	}
	if pending.AssignedUserID != "" {
		t.Error("AssignToUser mutated its input")
	}

	// Assigning an already-assigned task fails
	if _, err := assigned.AssignToUser(User{ID: "user-99"}); !errors.Is(err, ErrTaskAlreadyAssigned) {
		t.Errorf("Expected ErrTaskAlreadyAssigned, got %v", err)
	}
}

func TestSetPendingToReassign(t *testing.T) {
	t.Parallel()
	assigned := Task{
		ID:             "task-1",
		Name:           "Buy groceries",
		Description:    "Milk, eggs, bread",
		AssignedUserID: "user-56",
		ReportStatus:   TaskStatusAssigned,
	}

	pending := assigned.SetPendingToReassign()

	if pending.AssignedUserID != "" {
		t.Errorf("Expected assignee cleared, got %s", pending.AssignedUserID)
	}
	if pending.ReportStatus != TaskStatusPendingReassignment {
		t.Errorf("Expected status %s, got %s", TaskStatusPendingReassignment, pending.ReportStatus)
	}
	if pending == assigned {
		t.Error("SetPendingToReassign returned its input unchanged")
	}
	if assigned.AssignedUserID != "user-56" {
		t.Error("SetPendingToReassign mutated its input")
	}
}
