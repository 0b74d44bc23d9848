// Package taskstore provides thread-safe run-state storage with
// file-based persistence. It tracks the progress of analysis runs and
// the set of already analyzed handles so interrupted runs can resume
// without re-processing creators.
//
// Persistence uses atomic file writes; a failed save never corrupts
// the previous state file.
package taskstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TaskState describes the progress of one analysis run.
type TaskState struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the task-state contract injected into the orchestrator.
type Store interface {
	Get(key string) (TaskState, bool)
	Set(key string, state TaskState)
	Delete(key string)
}

// MemoryStore is the in-memory Store implementation with optional JSON
// persistence.
type MemoryStore struct {
	tasks    map[string]TaskState
	analyzed map[string]struct{}
	mu       sync.RWMutex

	filePath        string
	filePermissions os.FileMode
	dirPermissions  os.FileMode
}

// persistenceFile is the on-disk layout.
type persistenceFile struct {
	Version  string               `json:"version"`
	SavedAt  time.Time            `json:"saved_at"`
	Tasks    map[string]TaskState `json:"tasks"`
	Analyzed []string             `json:"analyzed"`
}

// New creates a MemoryStore persisting to filePath. An empty filePath
// uses an OS-appropriate tmp location.
func New(filePath string) *MemoryStore {
	if filePath == "" {
		filePath = filepath.Join(os.TempDir(), "brandlens", "state.json")
	}
	return &MemoryStore{
		tasks:           make(map[string]TaskState),
		analyzed:        make(map[string]struct{}),
		filePath:        filePath,
		filePermissions: 0o644,
		dirPermissions:  0o755,
	}
}

// Get retrieves a task state by key.
func (s *MemoryStore) Get(key string) (TaskState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, exists := s.tasks[key]
	return state, exists
}

// Set stores a task state, stamping the update time.
func (s *MemoryStore) Set(key string, state TaskState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.UpdatedAt = time.Now()
	s.tasks[key] = state
}

// Delete removes a task state.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, key)
}

// MarkAnalyzed records a handle as fully processed.
func (s *MemoryStore) MarkAnalyzed(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analyzed[handle] = struct{}{}
}

// IsAnalyzed reports whether a handle was already processed in a
// previous run.
func (s *MemoryStore) IsAnalyzed(handle string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.analyzed[handle]
	return exists
}

// AnalyzedCount returns the size of the skip list.
func (s *MemoryStore) AnalyzedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.analyzed)
}

// Save persists the store to file.
func (s *MemoryStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	analyzed := make([]string, 0, len(s.analyzed))
	for handle := range s.analyzed {
		analyzed = append(analyzed, handle)
	}

	data := persistenceFile{
		Version:  "1.0",
		SavedAt:  time.Now(),
		Tasks:    s.tasks,
		Analyzed: analyzed,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Write to temporary file first, then rename (atomic write).
	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, s.filePermissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Load restores the store from file. A missing file starts fresh.
func (s *MemoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clean up stale temp files from previous crashes.
	tempPath := s.filePath + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil
	}

	jsonData, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var data persistenceFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	s.tasks = data.Tasks
	if s.tasks == nil {
		s.tasks = make(map[string]TaskState)
	}

	s.analyzed = make(map[string]struct{}, len(data.Analyzed))
	for _, handle := range data.Analyzed {
		s.analyzed[handle] = struct{}{}
	}

	return nil
}
