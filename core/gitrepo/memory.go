package gitrepo

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// Memory is an in-memory Repository used by tests and dry runs. It tracks
// staged file contents against the last committed state so the dirty gate
// behaves like a real working tree.
type Memory struct {
	files     map[string][]byte
	committed map[string][]byte

	// PullErr, when set, is returned by every Pull call. Tests use it to
	// simulate an unreachable remote.
	PullErr error
	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error

	// CommitMessages records every commit made, in order.
	CommitMessages []string
	// Pulls counts Pull invocations.
	Pulls int
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		files:     make(map[string][]byte),
		committed: make(map[string][]byte),
	}
}

// Seed writes a file and marks it committed, as if it had been cloned from
// the remote.
func (m *Memory) Seed(name string, data []byte) {
	m.files[name] = data
	m.committed[name] = data
}

func (m *Memory) Pull(_ context.Context) error {
	m.Pulls++
	return m.PullErr
}

func (m *Memory) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func (m *Memory) WriteFile(name string, data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.files[name] = data
	return nil
}

func (m *Memory) RemoveFile(name string) error {
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("remove %s: %w", name, fs.ErrNotExist)
	}
	delete(m.files, name)
	return nil
}

func (m *Memory) Exists(name string) bool {
	_, ok := m.files[name]
	return ok
}

func (m *Memory) List(ext string) ([]string, error) {
	var names []string
	for name := range m.files {
		if strings.HasSuffix(name, ext) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (m *Memory) CommitAndPushIfDirty(_ context.Context, message string) (bool, error) {
	if !m.dirty() {
		return false, nil
	}
	m.committed = make(map[string][]byte, len(m.files))
	for name, data := range m.files {
		m.committed[name] = data
	}
	m.CommitMessages = append(m.CommitMessages, message)
	return true, nil
}

func (m *Memory) dirty() bool {
	if len(m.files) != len(m.committed) {
		return true
	}
	for name, data := range m.files {
		prev, ok := m.committed[name]
		if !ok || string(prev) != string(data) {
			return true
		}
	}
	return false
}
