// Package jobs provides an in-process worker pool for background work such
// as spreadsheet exports. Jobs are request-scoped and never persisted; a
// job that must survive a restart does not belong here.
package jobs

import (
	"context"

	"github.com/google/uuid"
)

// Job type constants
const (
	// JobTypePatientExport represents the job type for exporting patients
	// to a spreadsheet.
	JobTypePatientExport = "patient_export"
)

// Job represents a unit of background work to be processed.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface with a generated ID.
type JobFunc struct {
	id      uuid.UUID
	jobType string
	fn      func(ctx context.Context) error
}

// NewJobFunc wraps fn as a Job of the given type.
func NewJobFunc(jobType string, fn func(ctx context.Context) error) *JobFunc {
	return &JobFunc{
		id:      uuid.New(),
		jobType: jobType,
		fn:      fn,
	}
}

// ID implements Job.
func (j *JobFunc) ID() uuid.UUID { return j.id }

// Type implements Job.
func (j *JobFunc) Type() string { return j.jobType }

// Execute implements Job.
func (j *JobFunc) Execute(ctx context.Context) error { return j.fn(ctx) }
