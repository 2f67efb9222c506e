package hostvars

import (
	"context"
	"errors"
	"testing"

	"host-manager/core/gitrepo"
	"host-manager/core/gitrepo/mocks"
	"host-manager/core/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *gitrepo.Memory) {
	t.Helper()
	repo := gitrepo.NewMemory()
	return NewService(repo, zap.NewNop()), repo
}

func seedHost(repo *gitrepo.Memory, host, content string) {
	repo.Seed(host+".yml", []byte(content))
}

func TestService_Load(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\nstate:\n  is_provisioned: false\n")
	seedHost(repo, "web2", "system:\n  os: arch\n")

	records, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "debian", records["web1"]["system"].(map[string]any)["os"])
	assert.Equal(t, 1, repo.Pulls)
}

func TestService_Load_CorruptFileSubstitutesEmptyRecord(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\n")
	seedHost(repo, "broken", ":\t{{ not yaml")

	records, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{}, records["broken"])
	// The healthy record is untouched by its neighbor's corruption.
	assert.Contains(t, records["web1"], "system")
}

func TestService_Load_PullFailureProceedsOnLocalState(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "state:\n  is_provisioned: true\n")
	repo.PullErr = errors.New("remote unreachable")

	records, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestService_UpdateSection_InPlaceKeepsOtherKeys(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "state:\n  is_provisioned: false\n  boot_count: 4\n")

	err := svc.UpdateSection(context.Background(), "web1", SectionState, merge.InPlace,
		map[string]any{"is_provisioned": true})
	require.NoError(t, err)

	state, err := svc.GetSection(context.Background(), "web1", SectionState)
	require.NoError(t, err)
	assert.Equal(t, true, state["is_provisioned"])
	assert.Equal(t, 4, state["boot_count"])
	assert.Equal(t, []string{"Update hostvars"}, repo.CommitMessages)
}

func TestService_UpdateSection_OverrideReplacesSection(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "storage:\n  disk_name: sda\n  disk_size: 500\n")

	err := svc.UpdateSection(context.Background(), "web1", SectionStorage, merge.Override,
		map[string]any{"disk_name": "nvme0n1"})
	require.NoError(t, err)

	storage, err := svc.GetSection(context.Background(), "web1", SectionStorage)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"disk_name": "nvme0n1"}, storage)
}

func TestService_UpdateSection_WholeRecord(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\nstate:\n  is_provisioned: false\n")

	err := svc.UpdateSection(context.Background(), "web1", SectionAny, merge.InPlace,
		map[string]any{"labels": map[string]any{"rack": "r12"}})
	require.NoError(t, err)

	record, err := svc.Get(context.Background(), "web1")
	require.NoError(t, err)
	assert.Contains(t, record, "system")
	assert.Contains(t, record, "state")
	assert.Equal(t, "r12", record["labels"].(map[string]any)["rack"])
}

func TestService_UpdateSection_UnknownHost(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateSection(context.Background(), "ghost", SectionState, merge.InPlace,
		map[string]any{"is_provisioned": true})
	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestService_UpdateSection_WriteFailureSurfacesWithoutCommit(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "state:\n  is_provisioned: false\n")
	repo.WriteErr = errors.New("disk full")

	err := svc.UpdateSection(context.Background(), "web1", SectionState, merge.InPlace,
		map[string]any{"is_provisioned": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web1")
	assert.Empty(t, repo.CommitMessages)
}

func TestService_CreateHost_BatchesSectionsIntoOneCommit(t *testing.T) {
	svc, repo := newTestService(t)

	err := svc.CreateHost(context.Background(), "web1", map[Section]map[string]any{
		SectionSystem:  {"os": "debian"},
		SectionState:   {"is_provisioned": false},
		SectionStorage: {"disk_name": "sda", "partitions": []any{}},
	})
	require.NoError(t, err)
	require.Len(t, repo.CommitMessages, 1)

	record, err := svc.Get(context.Background(), "web1")
	require.NoError(t, err)
	assert.Contains(t, record, "system")
	assert.Contains(t, record, "state")
	assert.Contains(t, record, "storage")
}

func TestService_CreateHost_ExistingHostFails(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\n")

	err := svc.CreateHost(context.Background(), "web1", map[Section]map[string]any{
		SectionSystem: {"os": "arch"},
	})
	assert.ErrorIs(t, err, ErrHostExists)
	assert.Empty(t, repo.CommitMessages)

	// Record is untouched.
	system, err := svc.GetSection(context.Background(), "web1", SectionSystem)
	require.NoError(t, err)
	assert.Equal(t, "debian", system["os"])
}

func TestService_DeleteHost(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\n")

	require.NoError(t, svc.DeleteHost(context.Background(), "web1"))
	assert.Equal(t, []string{"Delete host web1"}, repo.CommitMessages)

	_, err := svc.Get(context.Background(), "web1")
	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestService_DeleteHost_AbsentIsSoftNoop(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, svc.DeleteHost(context.Background(), "ghost"))
	assert.Empty(t, repo.CommitMessages)
}

func TestService_DeleteHost_PushFailureSurfaces(t *testing.T) {
	mockRepo := new(mocks.Repository)
	svc := NewService(mockRepo, zap.NewNop())

	mockRepo.On("Pull", mock.Anything).Return(nil)
	mockRepo.On("Exists", "web1.yml").Return(true)
	mockRepo.On("RemoveFile", "web1.yml").Return(nil)
	mockRepo.On("CommitAndPushIfDirty", mock.Anything, "Delete host web1").
		Return(false, errors.New("remote rejected push"))

	err := svc.DeleteHost(context.Background(), "web1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web1")
	mockRepo.AssertExpectations(t)
}

func TestService_GetSection_UnsetSectionIsEmpty(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "system:\n  os: debian\n")

	state, err := svc.GetSection(context.Background(), "web1", SectionState)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestService_GetAllBySection(t *testing.T) {
	svc, repo := newTestService(t)
	seedHost(repo, "web1", "state:\n  is_provisioned: true\n")
	seedHost(repo, "web2", "system:\n  os: arch\n")

	states, err := svc.GetAllBySection(context.Background(), SectionState)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, true, states["web1"]["is_provisioned"])
	assert.Empty(t, states["web2"])
}
