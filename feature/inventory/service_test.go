package inventory

import (
	"context"
	"errors"
	"testing"

	"host-manager/core/gitrepo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *gitrepo.Memory) {
	t.Helper()
	repo := gitrepo.NewMemory()
	return NewService(repo, zap.NewNop()), repo
}

func testEntry(host, ip string) Entry {
	return Entry{
		Host:        host,
		IP:          ip,
		MAC:         "aa:bb:cc:dd:ee:ff",
		OS:          "debian",
		NodeType:    "workers",
		Family:      "server",
		Port:        22,
		AnsibleUser: "root",
	}
}

func TestService_Load_MissingFileYieldsEmptyInventory(t *testing.T) {
	svc, repo := newTestService(t)

	m, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m.Document().All.Hosts)
	assert.Equal(t, 1, repo.Pulls)
}

func TestService_AddHost(t *testing.T) {
	svc, repo := newTestService(t)

	outcome, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.5"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, []string{"Updated inventory"}, repo.CommitMessages)

	doc, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", doc.All.Hosts["n1"]["ansible_host"])
	assert.Contains(t, doc.All.Children, "workers")
}

func TestService_AddHost_DuplicateIsSkippedNoop(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.5"))
	require.NoError(t, err)
	commits := len(repo.CommitMessages)

	outcome, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.9"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	// Nothing new was committed and the original variables survive.
	assert.Len(t, repo.CommitMessages, commits)

	doc, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", doc.All.Hosts["n1"]["ansible_host"])
}

func TestService_RemoveHost(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.5"))
	require.NoError(t, err)

	outcome, err := svc.RemoveHost(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	doc, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.All.Hosts)
	assert.Empty(t, doc.All.Children)
	assert.Len(t, repo.CommitMessages, 2)
}

func TestService_RemoveHost_AbsentTriggersNoCommit(t *testing.T) {
	svc, repo := newTestService(t)
	seed := "all:\n  hosts:\n    n1:\n      ansible_host: 10.0.0.5\n  children: {}\n"
	repo.Seed("inventory.yml", []byte(seed))

	outcome, err := svc.RemoveHost(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, repo.CommitMessages)

	// Document content untouched.
	data, err := repo.ReadFile("inventory.yml")
	require.NoError(t, err)
	assert.Equal(t, seed, string(data))
}

func TestService_UpdateHostVars(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.5"))
	require.NoError(t, err)

	outcome, err := svc.UpdateHostVars(context.Background(), "n1", map[string]any{"role": "db"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	doc, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "db", doc.All.Hosts["n1"]["role"])
}

func TestService_UpdateHostVars_UnknownHostIsSkipped(t *testing.T) {
	svc, repo := newTestService(t)

	outcome, err := svc.UpdateHostVars(context.Background(), "ghost", map[string]any{"role": "db"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, repo.CommitMessages)
}

func TestService_PullFailureProceedsOnLocalState(t *testing.T) {
	svc, repo := newTestService(t)
	repo.Seed("inventory.yml", []byte("all:\n  hosts:\n    n1:\n      ansible_host: 10.0.0.5\n  children: {}\n"))
	repo.PullErr = errors.New("remote unreachable")

	doc, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Contains(t, doc.All.Hosts, "n1")
}

func TestService_WriteFailureIsHardError(t *testing.T) {
	svc, repo := newTestService(t)
	repo.WriteErr = errors.New("disk full")

	outcome, err := svc.AddHost(context.Background(), testEntry("n1", "10.0.0.5"))
	assert.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
}
