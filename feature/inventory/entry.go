package inventory

import (
	"fmt"
	"net"
)

var (
	validNodeTypes = map[string]bool{"coords": true, "infras": true, "workers": true}
	validOS        = map[string]bool{"arch": true, "debian": true}
	validFamilies  = map[string]bool{"server": true, "router": true}
)

// Entry is an inbound inventory registration for one host.
type Entry struct {
	Host        string   `json:"host"`
	IP          string   `json:"ip"`
	MAC         string   `json:"mac"`
	OS          string   `json:"os"`
	NodeType    string   `json:"node_type"`
	Family      string   `json:"family"`
	Groups      []string `json:"groups"`
	Port        int      `json:"port"`
	AnsibleUser string   `json:"ansible_user"`
}

// Validate checks the entry and applies defaults (ansible_user defaults to
// root).
func (e *Entry) Validate() error {
	if e.Host == "" {
		return fmt.Errorf("host is required")
	}
	if net.ParseIP(e.IP) == nil {
		return fmt.Errorf("ip %q is not a valid IP address", e.IP)
	}
	if e.MAC == "" {
		return fmt.Errorf("mac is required")
	}
	if !validOS[e.OS] {
		return fmt.Errorf("os must be one of arch, debian; got %q", e.OS)
	}
	if !validNodeTypes[e.NodeType] {
		return fmt.Errorf("node_type must be one of coords, infras, workers; got %q", e.NodeType)
	}
	if !validFamilies[e.Family] {
		return fmt.Errorf("family must be one of server, router; got %q", e.Family)
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", e.Port)
	}
	if e.AnsibleUser == "" {
		e.AnsibleUser = "root"
	}
	return nil
}

// GroupNames returns the groups the host is assigned to: its node type plus
// any explicitly requested groups. Sentinel names are filtered later by the
// model.
func (e *Entry) GroupNames() []string {
	return append([]string{e.NodeType}, e.Groups...)
}
