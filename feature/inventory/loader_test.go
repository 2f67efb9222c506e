package inventory

import (
	"testing"

	"host-manager/core/gitrepo"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(gitrepo.NewMemory(), zap.NewNop())

	assert.Equal(t, "inventory", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
