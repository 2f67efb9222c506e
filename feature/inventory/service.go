package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"host-manager/core/gitrepo"

	"go.uber.org/zap"
)

// inventoryFile is the single document the inventory repository holds.
const inventoryFile = "inventory.yml"

// Outcome classifies what a convenience mutation did. Domain-level refusals
// (duplicate host, unknown host) are reported as Skipped rather than errors
// so callers keep a simple happy path; hard failures (persistence, sync) are
// returned as errors alongside OutcomeFailed.
type Outcome string

const (
	// OutcomeApplied means the mutation changed the inventory and was
	// persisted.
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped means the mutation was a recoverable no-op; the
	// inventory is unchanged and nothing was committed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means a persistence or sync failure occurred.
	OutcomeFailed Outcome = "failed"
)

// Service is the inventory store: a thin pull/load/mutate/save/commit wrapper
// around the inventory model. The document is reconstructed from the working
// directory on every operation; no model survives across calls.
type Service struct {
	repo   gitrepo.Repository
	logger *zap.Logger
}

// NewService creates a new inventory store over the given repository.
func NewService(repo gitrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Load pulls the latest repository state and parses the inventory document.
// A repository without an inventory file yields an empty inventory.
func (s *Service) Load(ctx context.Context) (*Model, error) {
	s.pull(ctx)

	data, err := s.repo.ReadFile(inventoryFile)
	if errors.Is(err, fs.ErrNotExist) {
		return NewModel(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	return Unmarshal(data)
}

// Save serializes the model, writes the inventory document, and commits and
// pushes if the working tree changed.
func (s *Service) Save(ctx context.Context, m *Model) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize inventory: %w", err)
	}
	if err := s.repo.WriteFile(inventoryFile, data); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if _, err := s.repo.CommitAndPushIfDirty(ctx, "Updated inventory"); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}
	return nil
}

// AddHost adds a host to the inventory. A duplicate host is a skipped no-op,
// logged but not an error.
func (s *Service) AddHost(ctx context.Context, e Entry) (Outcome, error) {
	m, err := s.Load(ctx)
	if err != nil {
		return OutcomeFailed, err
	}

	if err := m.AddHost(e.Host, e.GroupNames(), e.IP, e.MAC, e.Port, e.AnsibleUser); err != nil {
		s.logger.Warn("Host already exists in the inventory, skipping",
			zap.String("host", e.Host))
		return OutcomeSkipped, nil
	}

	if err := s.Save(ctx, m); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// RemoveHost removes a host from the inventory. An absent host is a skipped
// no-op: nothing is written and no commit is triggered.
func (s *Service) RemoveHost(ctx context.Context, name string) (Outcome, error) {
	m, err := s.Load(ctx)
	if err != nil {
		return OutcomeFailed, err
	}

	if !m.RemoveHost(name) {
		s.logger.Warn("Host not found in the inventory, skipping removal",
			zap.String("host", name))
		return OutcomeSkipped, nil
	}

	if err := s.Save(ctx, m); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// UpdateHostVars merges variables into a host's variable mapping. An unknown
// host is a skipped no-op.
func (s *Service) UpdateHostVars(ctx context.Context, name string, vars map[string]any) (Outcome, error) {
	m, err := s.Load(ctx)
	if err != nil {
		return OutcomeFailed, err
	}

	if err := m.SetVariables(name, vars); err != nil {
		s.logger.Warn("Host not found in the inventory, skipping variable update",
			zap.String("host", name))
		return OutcomeSkipped, nil
	}

	if err := s.Save(ctx, m); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// Get returns the current inventory document.
func (s *Service) Get(ctx context.Context) (*Document, error) {
	m, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return m.Document(), nil
}

// pull refreshes the working directory, proceeding on local state when the
// remote is unreachable.
func (s *Service) pull(ctx context.Context) {
	if err := s.repo.Pull(ctx); err != nil {
		s.logger.Warn("Pull failed, proceeding on local working directory state",
			zap.Error(err))
	}
}
