package hostvars

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"host-manager/core/gitrepo"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *gitrepo.Memory) {
	t.Helper()
	app := fiber.New()
	repo := gitrepo.NewMemory()
	svc := NewService(repo, zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func TestHandleUpdateState(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("state:\n  is_provisioned: false\n"))

	status, body := doJSON(t, app, "POST", "/state", `{"web1": {"is_provisioned": true}}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "success", body["status"])

	status, body = doJSON(t, app, "GET", "/state/web1", "")
	assert.Equal(t, 200, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_provisioned"])
}

func TestHandleUpdateState_ValidationRejectsUnknownField(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("{}\n"))

	status, body := doJSON(t, app, "POST", "/state", `{"web1": {"is_provizioned": true}}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "error", body["status"])
}

func TestHandleUpdateStorage_PartialPut(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("storage:\n  disk_name: sda\n  disk_size: 500\n"))

	// PUT merges: disk_size is allowed to be absent.
	status, _ := doJSON(t, app, "PUT", "/storage", `{"web1": {"disk_name": "nvme0n1"}}`)
	assert.Equal(t, 200, status)

	status, body := doJSON(t, app, "GET", "/storage/web1", "")
	assert.Equal(t, 200, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "nvme0n1", data["disk_name"])
	assert.Equal(t, float64(500), data["disk_size"])
}

func TestHandleUpdateSystem_RejectsUnknownOS(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("{}\n"))

	status, _ := doJSON(t, app, "POST", "/system", `{"web1": {"os": "gentoo"}}`)
	assert.Equal(t, 400, status)
}

func TestHandleCreateHost(t *testing.T) {
	app, repo := setupTestApp(t)

	payload := `{
		"host": "web1",
		"system": {"os": "debian"},
		"state": {"is_provisioned": false},
		"storage": {"disk_name": "sda", "disk_size": 500, "partitions": []}
	}`
	status, _ := doJSON(t, app, "POST", "/hosts", payload)
	assert.Equal(t, 200, status)
	assert.Len(t, repo.CommitMessages, 1)

	// Creating the same host again conflicts.
	status, body := doJSON(t, app, "POST", "/hosts", payload)
	assert.Equal(t, 409, status)
	assert.Equal(t, "error", body["status"])
}

func TestHandleDeleteHost(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("system:\n  os: debian\n"))

	status, _ := doJSON(t, app, "DELETE", "/hosts/web1", "")
	assert.Equal(t, 200, status)

	status, _ = doJSON(t, app, "GET", "/hostvars/web1", "")
	assert.Equal(t, 404, status)
}

func TestHandleGetHost_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, "GET", "/hostvars/ghost", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "error", body["status"])
}

func TestHandleUpdateHostvars_DeepMerge(t *testing.T) {
	app, repo := setupTestApp(t)
	repo.Seed("web1.yml", []byte("system:\n  os: debian\nstate:\n  is_provisioned: true\n"))

	status, _ := doJSON(t, app, "POST", "/hostvars", `{"web1": {"labels": {"rack": "r12"}}}`)
	assert.Equal(t, 200, status)

	status, body := doJSON(t, app, "GET", "/hostvars/web1", "")
	assert.Equal(t, 200, status)
	data := body["data"].(map[string]any)
	assert.Contains(t, data, "system")
	assert.Contains(t, data, "state")
	assert.Contains(t, data, "labels")
}
