package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mode selects how strictly a payload is validated.
type Mode int

const (
	// Partial permits absent fields; only the fields that are present are
	// checked. Used by merge-style updates.
	Partial Mode = iota + 1
	// Full requires every field to be present and valid. Used by
	// replace-style updates.
	Full
)

// State is the provisioning state section of a host record.
type State struct {
	IsProvisioned *bool `json:"is_provisioned"`
}

// Validate checks the state payload under the given mode.
func (s *State) Validate(mode Mode) error {
	if mode == Full && s.IsProvisioned == nil {
		return fmt.Errorf("state: is_provisioned is required")
	}
	return nil
}

// Partition describes a single partition in the storage layout.
type Partition struct {
	PartitionType *string   `json:"partition_type"`
	Start         *string   `json:"start"`
	End           *string   `json:"end"`
	Number        *string   `json:"number"`
	Unit          *string   `json:"unit"`
	FSType        *string   `json:"fs_type"`
	MountPoint    *string   `json:"mount_point"`
	Flags         *[]string `json:"flags"`
}

// Validate checks the partition under the given mode.
func (p *Partition) Validate(mode Mode) error {
	if mode != Full {
		return nil
	}
	required := map[string]bool{
		"partition_type": p.PartitionType != nil,
		"start":          p.Start != nil,
		"end":            p.End != nil,
		"number":         p.Number != nil,
		"unit":           p.Unit != nil,
		"fs_type":        p.FSType != nil,
		"mount_point":    p.MountPoint != nil,
		"flags":          p.Flags != nil,
	}
	for field, present := range required {
		if !present {
			return fmt.Errorf("partition: %s is required", field)
		}
	}
	return nil
}

// Storage is the disk layout section of a host record.
type Storage struct {
	DiskName   *string      `json:"disk_name"`
	DiskSize   *int         `json:"disk_size"`
	Partitions *[]Partition `json:"partitions"`
}

// Validate checks the storage payload under the given mode.
func (s *Storage) Validate(mode Mode) error {
	if mode == Full {
		if s.DiskName == nil {
			return fmt.Errorf("storage: disk_name is required")
		}
		if s.DiskSize == nil {
			return fmt.Errorf("storage: disk_size is required")
		}
		if s.Partitions == nil {
			return fmt.Errorf("storage: partitions is required")
		}
	}
	if s.DiskSize != nil && *s.DiskSize <= 0 {
		return fmt.Errorf("storage: disk_size must be positive, got %d", *s.DiskSize)
	}
	if s.Partitions != nil {
		for i := range *s.Partitions {
			if err := (*s.Partitions)[i].Validate(mode); err != nil {
				return fmt.Errorf("storage: partition %d: %w", i, err)
			}
		}
	}
	return nil
}

// System is the system identity section of a host record.
type System struct {
	OS *string `json:"os"`
}

var validOS = map[string]bool{"arch": true, "debian": true}

// Validate checks the system payload under the given mode.
func (s *System) Validate(mode Mode) error {
	if mode == Full && s.OS == nil {
		return fmt.Errorf("system: os is required")
	}
	if s.OS != nil && !validOS[*s.OS] {
		return fmt.Errorf("system: os must be one of arch, debian; got %q", *s.OS)
	}
	return nil
}

// validator is implemented by every section model.
type validator interface {
	Validate(mode Mode) error
}

// decode round-trips an untyped payload through JSON into the typed model,
// rejecting keys the model does not know.
func decode(payload map[string]any, into validator) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(into)
}

// ValidateState checks an untyped state payload.
func ValidateState(payload map[string]any, mode Mode) error {
	var s State
	if err := decode(payload, &s); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	return s.Validate(mode)
}

// ValidateStorage checks an untyped storage payload.
func ValidateStorage(payload map[string]any, mode Mode) error {
	var s Storage
	if err := decode(payload, &s); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return s.Validate(mode)
}

// ValidateSystem checks an untyped system payload.
func ValidateSystem(payload map[string]any, mode Mode) error {
	var s System
	if err := decode(payload, &s); err != nil {
		return fmt.Errorf("system: %w", err)
	}
	return s.Validate(mode)
}
