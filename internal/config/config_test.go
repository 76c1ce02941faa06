package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/internal/config"
	"github.com/aretw0/atcdesk/pkg/core"
)

const yamlConfig = `
desk: GCTS
data:
  adapter: bolt
  path: ./data
log:
  level: debug
  file: logs/atcdesk.log
remote:
  plans_url: https://sheets.example.org/exec
  cache_ttl: 30s
mqtt:
  broker: tcp://localhost:1883
  qos: 1
presets:
  server_code: abc123
  password: secret
  atis: "Tenerife South (GCTS)\n"
web:
  addr: ":9000"
  frequencies:
    - label: GCTS_TWR
      value: "120.300"
`

const tomlConfig = `
desk = "GCTS"

[data]
adapter = "bolt"
path = "./data"

[log]
level = "debug"
file = "logs/atcdesk.log"

[remote]
plans_url = "https://sheets.example.org/exec"
cache_ttl = "30s"

[mqtt]
broker = "tcp://localhost:1883"
qos = 1

[presets]
server_code = "abc123"
password = "secret"
atis = "Tenerife South (GCTS)\n"

[web]
addr = ":9000"

[[web.frequencies]]
label = "GCTS_TWR"
value = "120.300"
`

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoad_YAMLAndTOMLAgree(t *testing.T) {
	fromYAML, err := config.Load(write(t, "atcdesk.yaml", yamlConfig))
	require.NoError(t, err)
	fromTOML, err := config.Load(write(t, "atcdesk.toml", tomlConfig))
	require.NoError(t, err)

	fromYAML.Source, fromTOML.Source = "", ""
	assert.Equal(t, fromYAML, fromTOML)

	assert.Equal(t, "bolt", fromYAML.Data.Adapter)
	assert.Equal(t, config.Duration(30*time.Second), fromYAML.Remote.CacheTTL)
	assert.Equal(t, core.Presets{ServerCode: "abc123", Password: "secret", ATIS: "Tenerife South (GCTS)\n"}, fromYAML.Presets)
	assert.Equal(t, []config.Choice{{Label: "GCTS_TWR", Value: "120.300"}}, fromYAML.Web.Frequencies)
	assert.Len(t, fromYAML.Web.Charts, 3, "unset lists keep their defaults")
}

func TestLoad_EmptyFileIsDefault(t *testing.T) {
	cfg, err := config.Load(write(t, "atcdesk.yml", "\n"))
	require.NoError(t, err)
	want := config.Default()
	want.Source = cfg.Source
	assert.Equal(t, want, cfg)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"Unknown Adapter", "atcdesk.yaml", "data:\n  adapter: s3\n"},
		{"Unknown Field", "atcdesk.yaml", "nope: 1\n"},
		{"Relative Plans URL", "atcdesk.toml", "[remote]\nplans_url = \"/exec\"\n"},
		{"Auth Without Login", "atcdesk.json", `{"remote":{"auth_url":"https://auth.example.org/check"}}`},
		{"Bad Duration", "atcdesk.yaml", "remote:\n  cache_ttl: soon\n"},
		{"Bad Level", "atcdesk.yaml", "log:\n  level: loud\n"},
		{"Bad Format", "atcdesk.ini", "x=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(write(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, config.Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "atcdesk.toml"), nil, 0644))
	assert.Equal(t, filepath.Join(dir, "atcdesk.toml"), config.Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "atcdesk.yaml"), nil, 0644))
	assert.Equal(t, filepath.Join(dir, "atcdesk.yaml"), config.Find(dir))
}
