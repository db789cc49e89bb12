// Package jobs runs background workers alongside the API server.
package jobs

import (
	"context"
	"sync"
)

// Job is a long-running worker that returns when ctx is cancelled.
type Job interface {
	Run(ctx context.Context)
}

type Manager struct {
	jobs []Job
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start launches every registered job and blocks until ctx is cancelled
// and all jobs have returned.
func (m *Manager) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for _, job := range m.jobs {
		wg.Add(1)

		go func() {
			defer wg.Done()
			job.Run(ctx)
		}()
	}

	wg.Wait()
}
