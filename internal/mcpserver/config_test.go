package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	assert.True(t, envBool("SWAGSCHEMA_TEST_UNSET", true))

	t.Setenv("SWAGSCHEMA_TEST_BOOL", "false")
	assert.False(t, envBool("SWAGSCHEMA_TEST_BOOL", true))

	t.Setenv("SWAGSCHEMA_TEST_BOOL", "not-a-bool")
	assert.True(t, envBool("SWAGSCHEMA_TEST_BOOL", true))
}

func TestEnvInt(t *testing.T) {
	assert.Equal(t, 10, envInt("SWAGSCHEMA_TEST_UNSET", 10))

	t.Setenv("SWAGSCHEMA_TEST_INT", "25")
	assert.Equal(t, 25, envInt("SWAGSCHEMA_TEST_INT", 10))

	t.Setenv("SWAGSCHEMA_TEST_INT", "-3")
	assert.Equal(t, 10, envInt("SWAGSCHEMA_TEST_INT", 10))
}

func TestEnvDuration(t *testing.T) {
	assert.Equal(t, time.Minute, envDuration("SWAGSCHEMA_TEST_UNSET", time.Minute))

	t.Setenv("SWAGSCHEMA_TEST_DUR", "30s")
	assert.Equal(t, 30*time.Second, envDuration("SWAGSCHEMA_TEST_DUR", time.Minute))

	t.Setenv("SWAGSCHEMA_TEST_DUR", "soon")
	assert.Equal(t, time.Minute, envDuration("SWAGSCHEMA_TEST_DUR", time.Minute))
}
