package hostvars

import (
	"errors"
	"fmt"
)

// Section names a sub-document within a host record.
type Section string

const (
	// SectionState holds provisioning state (e.g. is_provisioned).
	SectionState Section = "state"
	// SectionStorage holds the disk layout.
	SectionStorage Section = "storage"
	// SectionSystem holds system identity (e.g. os).
	SectionSystem Section = "system"
	// SectionAny addresses the whole record instead of a single section.
	SectionAny Section = "any"
)

// IsValid reports whether s is a known section selector.
func (s Section) IsValid() bool {
	switch s {
	case SectionState, SectionStorage, SectionSystem, SectionAny:
		return true
	default:
		return false
	}
}

// Record is the full per-host document: a mapping from section name to an
// arbitrary nested value. A record is always a mapping at the top level;
// a host with no record has no file, not an empty one.
type Record = map[string]any

var (
	// ErrHostNotFound is returned when the referenced host has no record file.
	ErrHostNotFound = errors.New("host not found")
	// ErrHostExists is returned when creating a host whose record file
	// already exists.
	ErrHostExists = errors.New("host already exists")
)

// recordFile returns the file name a host's record is stored under.
func recordFile(host string) string {
	return fmt.Sprintf("%s.yml", host)
}
