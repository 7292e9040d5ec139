package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"gateway_addr": "www.example:9000",
			"database_path": "/var/lib/wghub.db",
			"log_file": "x.log",
			"log_level": "error",
			"push_listen_addr": ":1234",
			"sweep_schedule": "0 * * * *",
			"request_timeout": 5000000000,
			"push_token": "abc"
		}`)

		c := defaults()
		require.NoError(t, parseJson(c, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", c.GatewayAddr)
		assert.Equal(t, "/var/lib/wghub.db", c.DatabasePath)
		assert.Equal(t, "0 * * * *", c.SweepSchedule)
		assert.Equal(t, 5*time.Second, c.RequestTimeout)
		assert.Equal(t, "abc", c.PushToken)
	})

	t.Run("no file → no changes", func(t *testing.T) {
		c := defaults()
		require.NoError(t, parseJson(c, []string{"-a", "x:1"}))
		assert.Equal(t, defaults(), c)
	})

	t.Run("omitted fields keep earlier values", func(t *testing.T) {
		path := writeTemp(t, "partial.json", `{"log_level": "debug"}`)

		c := defaults()
		c.GatewayAddr = "from-env:1"
		require.NoError(t, parseJson(c, []string{"-c", path}))

		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, "from-env:1", c.GatewayAddr)
		assert.Equal(t, 10*time.Second, c.RequestTimeout)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{"request_timeout": true}`)
		require.Error(t, parseJson(defaults(), []string{"-c", path}))
	})
}
