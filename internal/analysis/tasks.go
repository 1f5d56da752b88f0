package analysis

import (
	"sync"
	"time"

	"gorelate/domain/assoc"
	"gorelate/domain/core"
	"gorelate/ports"
)

// TaskState is the mutable progress record of one asynchronous analysis.
type TaskState struct {
	Status         ports.Status
	Progress       float64
	StepsCompleted []string
	ETASeconds     float64
	Message        string
	Results        *assoc.Result
	StartedAt      time.Time
}

// TaskStore tracks in-flight and completed analysis tasks. Access is
// mutex-guarded; the service handlers and worker goroutines share it.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[core.TaskID]*TaskState
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[core.TaskID]*TaskState)}
}

// Create registers a new processing task and returns its ID.
func (ts *TaskStore) Create() core.TaskID {
	id := core.TaskID(core.NewID())
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tasks[id] = &TaskState{
		Status:         ports.StatusProcessing,
		StepsCompleted: []string{},
		StartedAt:      time.Now(),
	}
	return id
}

// Get returns a copy of the task state, or false for unknown IDs.
func (ts *TaskStore) Get(id core.TaskID) (TaskState, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	state, ok := ts.tasks[id]
	if !ok {
		return TaskState{}, false
	}
	return *state, true
}

// UpdateProgress records step completion and recomputes the ETA from the
// average time per completed step.
func (ts *TaskStore) UpdateProgress(id core.TaskID, progress float64, stepsCompleted []string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	state, ok := ts.tasks[id]
	if !ok {
		return
	}
	state.Progress = progress
	state.StepsCompleted = append([]string(nil), stepsCompleted...)

	done := len(stepsCompleted)
	totalSteps := len(analysisSteps)
	if done > 0 && done < totalSteps {
		elapsed := time.Since(state.StartedAt).Seconds()
		avgPerStep := elapsed / float64(done)
		state.ETASeconds = avgPerStep * float64(totalSteps-done)
	} else {
		state.ETASeconds = 0
	}
}

// Complete marks a task successful with its result snapshot.
func (ts *TaskStore) Complete(id core.TaskID, result *assoc.Result) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	state, ok := ts.tasks[id]
	if !ok {
		return
	}
	state.Status = ports.StatusSuccess
	state.Progress = 100
	state.StepsCompleted = append([]string(nil), analysisSteps...)
	state.ETASeconds = 0
	state.Results = result
}

// Fail marks a task failed with a message for the client.
func (ts *TaskStore) Fail(id core.TaskID, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	state, ok := ts.tasks[id]
	if !ok {
		return
	}
	state.Status = ports.StatusError
	state.Message = message
}
