package construct

import (
	"sync"

	"github.com/google/uuid"
)

// JobStatus tracks in-flight suffix-bucket construction passes and
// blocked-merge jobs by UUID.
type JobStatus string

const (
	JobStarted   JobStatus = "started"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job represents one suffix-bucket construction pass or blocked-merge
// block, tracked for progress reporting by an owning CLI command.
type Job struct {
	ID       string
	Status   JobStatus
	Detail   string // e.g. "suffix 3/16" or "block 2/8"
	Err      error
	mu       sync.RWMutex
}

// JobManager tracks all in-flight construction/merge jobs: uuid.New()
// id allocation over a map-plus-mutex registry.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobManager creates an empty job registry.
func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]*Job)}
}

// NewJob registers and returns a new job with a fresh UUID.
func (jm *JobManager) NewJob(detail string) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	j := &Job{ID: uuid.New().String(), Status: JobStarted, Detail: detail}
	jm.jobs[j.ID] = j
	return j
}

// Get retrieves a job by id.
func (jm *JobManager) Get(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	j, ok := jm.jobs[id]
	return j, ok
}

// SetStatus updates the job's status.
func (j *Job) SetStatus(s JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = s
}

// SetProgress updates the job's detail string.
func (j *Job) SetProgress(detail string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Detail = detail
}

// Fail marks the job failed and records the error.
func (j *Job) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobFailed
	j.Err = err
}
