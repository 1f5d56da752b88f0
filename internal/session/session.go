// Package session holds all per-upload derived state behind one explicit
// session value: rows, column types, selection, and the latest analysis
// snapshot. Uploading a new dataset resets everything derived from the
// previous one; a new analysis replaces the previous snapshot wholesale.
package session

import (
	"sync"

	"gorelate/domain/assoc"
	"gorelate/domain/column"
	"gorelate/domain/core"
	"gorelate/domain/table"
)

// Snapshot is the atomic result of one completed analysis. It is written
// once when polling terminates and replaced wholesale on the next run.
type Snapshot struct {
	Result      *assoc.Result
	Aggregate   *assoc.Aggregate
	Report      string // markdown run report
	CompletedAt core.Timestamp
}

// Progress mirrors the in-flight state of an analysis for the UI.
type Progress struct {
	Running        bool
	Percent        float64
	StepsCompleted []string
	ETASeconds     float64
	Error          string
}

// Session owns the state of one uploaded dataset. All access goes through
// the mutex; UI handlers call into a session concurrently.
type Session struct {
	ID core.SessionID

	mu        sync.RWMutex
	filename  string
	tbl       *table.Table
	types     column.TypeMap
	selection table.Selection
	snapshot  *Snapshot
	progress  Progress
}

// New creates an empty session.
func New() *Session {
	return &Session{ID: core.SessionID(core.NewID())}
}

// SetDataset installs a freshly uploaded dataset, recomputes the column type
// map, and drops every value derived from the previous upload.
func (s *Session) SetDataset(filename string, tbl *table.Table) {
	types := column.Classify(tbl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.tbl = tbl
	s.types = types
	s.selection = nil
	s.snapshot = nil
	s.progress = Progress{}
}

// Dataset returns the current table and its filename; the table is nil when
// nothing has been uploaded yet.
func (s *Session) Dataset() (*table.Table, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tbl, s.filename
}

// Types returns the column type map of the current dataset.
func (s *Session) Types() column.TypeMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types
}

// SetSelection replaces the selected columns.
func (s *Session) SetSelection(sel table.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// Selection returns the currently selected columns.
func (s *Session) Selection() table.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetSnapshot installs the result of a completed analysis, replacing any
// previous snapshot, and clears the in-flight progress state.
func (s *Session) SetSnapshot(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.progress = Progress{}
}

// Snapshot returns the latest completed analysis, or nil when none exists.
// A nil snapshot is how the UI distinguishes "no analysis yet / failed
// request" from a valid empty result.
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetProgress updates the in-flight analysis state.
func (s *Session) SetProgress(p Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
}

// Progress returns the in-flight analysis state.
func (s *Session) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// Store hands out sessions keyed by ID, one per UI session cookie.
type Store struct {
	mu       sync.Mutex
	sessions map[core.SessionID]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[core.SessionID]*Session)}
}

// Get returns the session for id, or nil when unknown.
func (st *Store) Get(id core.SessionID) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Create makes a new session and registers it.
func (st *Store) Create() *Session {
	s := New()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// GetOrCreate returns the session for id, creating a fresh one when the id
// is unknown or empty.
func (st *Store) GetOrCreate(id core.SessionID) *Session {
	if id != "" {
		if s := st.Get(id); s != nil {
			return s
		}
	}
	return st.Create()
}
