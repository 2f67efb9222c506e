package hostvars

import (
	"context"
	"fmt"
	"strings"

	"host-manager/core/gitrepo"
	"host-manager/core/merge"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Service is the host record store. Every operation re-pulls and reloads the
// full record set from the working directory, applies at most one mutation,
// and persists the whole set back. No state is retained between calls.
type Service struct {
	repo   gitrepo.Repository
	logger *zap.Logger
}

// NewService creates a new host record store over the given repository.
func NewService(repo gitrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Load pulls the latest repository state and reads every per-host record
// into memory. A record file that fails to parse is substituted with an
// empty record so one corrupt file cannot block operations on other hosts;
// the substitution is logged as a data-integrity concern.
func (s *Service) Load(ctx context.Context) (map[string]Record, error) {
	s.pull(ctx)

	files, err := s.repo.List(".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to list host records: %w", err)
	}

	records := make(map[string]Record, len(files))
	for _, name := range files {
		host := strings.TrimSuffix(name, ".yml")

		data, err := s.repo.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read record for host %s: %w", host, err)
		}

		var record Record
		if err := yaml.Unmarshal(data, &record); err != nil {
			s.logger.Warn("Host record failed to parse, substituting empty record; stored data is at risk",
				zap.String("host", host),
				zap.Error(err))
			record = Record{}
		}
		if record == nil {
			record = Record{}
		}
		records[host] = record
	}

	return records, nil
}

// UpdateSection applies one update to one host's section (or to the whole
// record when section is SectionAny) and persists the full record set.
func (s *Service) UpdateSection(ctx context.Context, host string, section Section, discipline merge.Discipline, payload map[string]any) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}

	record, ok := records[host]
	if !ok {
		return fmt.Errorf("no record for host %s: %w", host, ErrHostNotFound)
	}

	if section == SectionAny {
		records[host] = merge.Apply(record, payload, discipline)
	} else {
		existing, _ := record[string(section)].(map[string]any)
		record[string(section)] = merge.Apply(existing, payload, discipline)
	}

	return s.saveAll(ctx, records, "Update hostvars")
}

// CreateHost writes a new host record containing the supplied sections. All
// sections land in a single commit so a partially initialized record is never
// published. It fails if a record file for the host already exists.
func (s *Service) CreateHost(ctx context.Context, host string, sections map[Section]map[string]any) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if _, ok := records[host]; ok {
		return fmt.Errorf("record for host %s: %w", host, ErrHostExists)
	}

	record := Record{}
	for section, payload := range sections {
		record[string(section)] = merge.Apply(nil, payload, merge.Override)
	}
	records[host] = record

	return s.saveAll(ctx, records, fmt.Sprintf("Create host %s", host))
}

// DeleteHost removes a host's record file. Deleting a host that has no
// record is a no-op with a warning, not an error.
func (s *Service) DeleteHost(ctx context.Context, host string) error {
	s.pull(ctx)

	name := recordFile(host)
	if !s.repo.Exists(name) {
		s.logger.Warn("Delete requested for host without a record, nothing to do",
			zap.String("host", host))
		return nil
	}

	if err := s.repo.RemoveFile(name); err != nil {
		return fmt.Errorf("failed to delete record for host %s: %w", host, err)
	}

	if _, err := s.repo.CommitAndPushIfDirty(ctx, fmt.Sprintf("Delete host %s", host)); err != nil {
		return fmt.Errorf("failed to persist deletion of host %s: %w", host, err)
	}
	return nil
}

// Get returns a host's full record.
func (s *Service) Get(ctx context.Context, host string) (Record, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := records[host]
	if !ok {
		return nil, fmt.Errorf("no record for host %s: %w", host, ErrHostNotFound)
	}
	return record, nil
}

// GetAll returns every host record.
func (s *Service) GetAll(ctx context.Context) (map[string]Record, error) {
	return s.Load(ctx)
}

// GetSection returns one section of a host's record. SectionAny returns the
// whole record. A section that was never set comes back as an empty mapping.
func (s *Service) GetSection(ctx context.Context, host string, section Section) (map[string]any, error) {
	record, err := s.Get(ctx, host)
	if err != nil {
		return nil, err
	}
	if section == SectionAny {
		return record, nil
	}
	value, _ := record[string(section)].(map[string]any)
	if value == nil {
		value = map[string]any{}
	}
	return value, nil
}

// GetAllBySection projects one section out of every host record.
func (s *Service) GetAllBySection(ctx context.Context, section Section) (map[string]map[string]any, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]any, len(records))
	for host, record := range records {
		if section == SectionAny {
			out[host] = record
			continue
		}
		value, _ := record[string(section)].(map[string]any)
		if value == nil {
			value = map[string]any{}
		}
		out[host] = value
	}
	return out, nil
}

// saveAll rewrites every host record file and commits the result if anything
// changed. All writes happen before the commit is attempted; a write failure
// surfaces immediately and leaves earlier writes uncommitted in the worktree,
// where the next pull/load cycle reconciles them.
func (s *Service) saveAll(ctx context.Context, records map[string]Record, message string) error {
	for host, record := range records {
		data, err := yaml.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to serialize record for host %s: %w", host, err)
		}
		if err := s.repo.WriteFile(recordFile(host), data); err != nil {
			return fmt.Errorf("failed to write record for host %s: %w", host, err)
		}
	}

	if _, err := s.repo.CommitAndPushIfDirty(ctx, message); err != nil {
		return fmt.Errorf("failed to commit host records: %w", err)
	}
	return nil
}

// pull refreshes the working directory. A failed pull is logged and the
// operation proceeds on local state, trading strict freshness for
// availability.
func (s *Service) pull(ctx context.Context) {
	if err := s.repo.Pull(ctx); err != nil {
		s.logger.Warn("Pull failed, proceeding on local working directory state",
			zap.Error(err))
	}
}
