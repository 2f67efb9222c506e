package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Validate(t *testing.T) {
	valid := func() Entry { return testEntry("n1", "10.0.0.5") }

	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr bool
	}{
		{"Valid", func(e *Entry) {}, false},
		{"MissingHost", func(e *Entry) { e.Host = "" }, true},
		{"BadIP", func(e *Entry) { e.IP = "10.0.0.999" }, true},
		{"IPv6", func(e *Entry) { e.IP = "fd00::5" }, false},
		{"MissingMAC", func(e *Entry) { e.MAC = "" }, true},
		{"BadOS", func(e *Entry) { e.OS = "gentoo" }, true},
		{"BadNodeType", func(e *Entry) { e.NodeType = "leaders" }, true},
		{"BadFamily", func(e *Entry) { e.Family = "switch" }, true},
		{"PortZero", func(e *Entry) { e.Port = 0 }, true},
		{"PortTooHigh", func(e *Entry) { e.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntry_Validate_DefaultsUser(t *testing.T) {
	e := testEntry("n1", "10.0.0.5")
	e.AnsibleUser = ""
	assert.NoError(t, e.Validate())
	assert.Equal(t, "root", e.AnsibleUser)
}

func TestEntry_GroupNames(t *testing.T) {
	e := testEntry("n1", "10.0.0.5")
	e.Groups = []string{"dbs", "all"}
	assert.Equal(t, []string{"workers", "dbs", "all"}, e.GroupNames())
}
