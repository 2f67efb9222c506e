package inventory

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateHost is returned when adding a host that already exists.
	// Host names are unique; adding never overwrites.
	ErrDuplicateHost = errors.New("host already exists in inventory")
	// ErrHostNotFound is returned when referencing a host the inventory
	// does not contain.
	ErrHostNotFound = errors.New("host not found in inventory")
)

// sentinelGroups are group names that are never materialized as children.
var sentinelGroups = map[string]bool{"all": true, "ungrouped": true, "": true}

// Model is the in-memory inventory: every host with its variables, and group
// memberships. A host exists iff it is present in hosts; group membership is
// pure key presence, carrying no per-group variables.
type Model struct {
	hosts  map[string]map[string]any
	groups map[string]map[string]struct{}
}

// NewModel returns an empty inventory.
func NewModel() *Model {
	return &Model{
		hosts:  make(map[string]map[string]any),
		groups: make(map[string]map[string]struct{}),
	}
}

// AddHost inserts a host with its connection variables and assigns it to the
// given groups. Sentinel group names (all, ungrouped, empty) are skipped.
// Adding a host that already exists fails with ErrDuplicateHost and leaves
// the inventory unchanged.
func (m *Model) AddHost(name string, groups []string, ip, mac string, port int, user string) error {
	if _, ok := m.hosts[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHost, name)
	}

	m.hosts[name] = map[string]any{
		"ansible_host": ip,
		"ansible_user": user,
		"ansible_port": port,
		"primary_mac":  mac,
	}

	for _, group := range groups {
		if sentinelGroups[group] {
			continue
		}
		if m.groups[group] == nil {
			m.groups[group] = make(map[string]struct{})
		}
		m.groups[group][name] = struct{}{}
	}

	return nil
}

// RemoveHost removes a host from the inventory and from every group it is a
// member of, pruning groups that become empty. It reports whether the host
// was present.
func (m *Model) RemoveHost(name string) bool {
	if _, ok := m.hosts[name]; !ok {
		return false
	}

	delete(m.hosts, name)
	for group, members := range m.groups {
		delete(members, name)
		if len(members) == 0 {
			delete(m.groups, group)
		}
	}
	return true
}

// SetVariables merges the supplied variables into the host's variable
// mapping, each key overriding any previous value.
func (m *Model) SetVariables(name string, vars map[string]any) error {
	hostVars, ok := m.hosts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrHostNotFound, name)
	}
	for k, v := range vars {
		hostVars[k] = v
	}
	return nil
}

// HasHost reports whether a host exists in the inventory.
func (m *Model) HasHost(name string) bool {
	_, ok := m.hosts[name]
	return ok
}

// Document is the on-disk inventory shape: a single root group "all" with
// host variables and child group memberships.
type Document struct {
	All DocumentAll `yaml:"all" json:"all"`
}

// DocumentAll holds the root group's hosts and children.
type DocumentAll struct {
	Hosts    map[string]map[string]any `yaml:"hosts" json:"hosts"`
	Children map[string]DocumentGroup  `yaml:"children" json:"children"`
}

// DocumentGroup lists a child group's member hosts. Values are always null;
// membership is expressed purely by key presence.
type DocumentGroup struct {
	Hosts map[string]any `yaml:"hosts" json:"hosts"`
}

// Document serializes the model to the on-disk shape.
func (m *Model) Document() *Document {
	doc := &Document{
		All: DocumentAll{
			Hosts:    make(map[string]map[string]any, len(m.hosts)),
			Children: make(map[string]DocumentGroup, len(m.groups)),
		},
	}

	for name, vars := range m.hosts {
		hostVars := make(map[string]any, len(vars))
		for k, v := range vars {
			hostVars[k] = v
		}
		doc.All.Hosts[name] = hostVars
	}

	for group, members := range m.groups {
		entry := DocumentGroup{Hosts: make(map[string]any, len(members))}
		for name := range members {
			entry.Hosts[name] = nil
		}
		doc.All.Children[group] = entry
	}

	return doc
}

// FromDocument rebuilds a model from the on-disk shape. Group entries naming
// hosts absent from all.hosts are dropped, and group entries that end up
// empty are pruned.
func FromDocument(doc *Document) *Model {
	m := NewModel()
	if doc == nil {
		return m
	}

	for name, vars := range doc.All.Hosts {
		hostVars := make(map[string]any, len(vars))
		for k, v := range vars {
			hostVars[k] = v
		}
		m.hosts[name] = hostVars
	}

	for group, entry := range doc.All.Children {
		if sentinelGroups[group] {
			continue
		}
		members := make(map[string]struct{}, len(entry.Hosts))
		for name := range entry.Hosts {
			if _, ok := m.hosts[name]; ok {
				members[name] = struct{}{}
			}
		}
		if len(members) > 0 {
			m.groups[group] = members
		}
	}

	return m
}

// Marshal serializes the model to YAML.
func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m.Document())
}

// Unmarshal parses an on-disk inventory document into a model.
func Unmarshal(data []byte) (*Model, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inventory document: %w", err)
	}
	return FromDocument(&doc), nil
}
