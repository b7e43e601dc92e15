// Copyright 2026 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qlogx

import (
	"github.com/TimeWtr/qlogx/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func boolPtr(b bool) *bool {
	return &b
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "qlogx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
folder: /var/app
level: debug
mode: file
file_tag: number
max_file_size: 2048
displays: [level, module, datetime, message]
destinations:
  - file: net.log
    modules: [net, http]
    level: info
  - file: db.log
    modules: [db]
    mode: full
    notify: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/app", cfg.Folder)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	require.Len(t, cfg.Destinations, 2)
	assert.Equal(t, []string{"net", "http"}, cfg.Destinations[0].Modules)
	require.NotNil(t, cfg.Destinations[1].Notify)
	assert.False(t, *cfg.Destinations[1].Notify)
}

func TestLoadConfig_Missing_File(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_Malformed_Yaml(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "level: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestConfigValidate(t *testing.T) {
	valid := Destination{File: "app.log", Modules: []string{"app"}}

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "unknown level",
			cfg:  Config{Level: "loud", Destinations: []Destination{valid}},
			want: errorx.ErrUnknownLevel,
		},
		{
			name: "unknown mode",
			cfg:  Config{Mode: "teletype", Destinations: []Destination{valid}},
			want: errorx.ErrUnknownMode,
		},
		{
			name: "unknown display",
			cfg:  Config{Displays: []string{"color"}, Destinations: []Destination{valid}},
			want: errorx.ErrUnknownDisplay,
		},
		{
			name: "no destinations",
			cfg:  Config{},
			want: errorx.ErrNoSources,
		},
		{
			name: "destination without modules",
			cfg:  Config{Destinations: []Destination{{File: "a.log"}}},
			want: errorx.ErrNoModules,
		},
		{
			name: "destination unknown level",
			cfg:  Config{Destinations: []Destination{{File: "a.log", Modules: []string{"a"}, Level: "loud"}}},
			want: errorx.ErrUnknownLevel,
		},
		{
			name: "destination unknown file tag",
			cfg:  Config{Destinations: []Destination{{File: "a.log", Modules: []string{"a"}, FileTag: "uuid"}}},
			want: errorx.ErrUnknownFileTag,
		},
		{
			name: "destination unknown file handling",
			cfg:  Config{Destinations: []Destination{{File: "a.log", Modules: []string{"a"}, FileHandling: "rolling"}}},
			want: errorx.ErrUnknownFileHandling,
		},
		{
			name: "destination unknown compress level",
			cfg:  Config{Destinations: []Destination{{File: "a.log", Modules: []string{"a"}, CompressLevel: "zstd"}}},
			want: errorx.ErrCompressLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), tc.want)
		})
	}

	ok := Config{Level: "info", Destinations: []Destination{valid}}
	assert.NoError(t, ok.Validate())
}

func TestParseDisplays_Union(t *testing.T) {
	displays, err := parseDisplays([]string{"level", "message"})
	require.NoError(t, err)
	assert.Equal(t, DisplayLogLevel|DisplayMessage, displays)

	displays, err = parseDisplays(nil)
	require.NoError(t, err)
	assert.Zero(t, displays)
}

func TestManagerConfigure(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()

	cfg := &Config{
		Folder: dir,
		Level:  "trace",
		Destinations: []Destination{
			{File: "svc.log", Modules: []string{"svc"}, Notify: boolPtr(false)},
			{File: "audit.log", Modules: []string{"audit"}, Level: "error", Notify: boolPtr(false)},
		},
	}
	require.NoError(t, m.Configure(cfg))

	m.Info("svc", "configured")
	m.Info("audit", "filtered out")
	m.Error("audit", "recorded")
	require.NoError(t, m.Close())

	lines := readLines(t, logPath(dir, "svc.log"))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "configured")

	lines = readLines(t, logPath(dir, "audit.log"))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "recorded")
}

func TestManagerConfigure_Invalid_Registers_Nothing(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()

	cfg := &Config{
		Folder: dir,
		Destinations: []Destination{
			{File: "svc.log", Modules: []string{"svc"}, Level: "loud"},
		},
	}
	require.Error(t, m.Configure(cfg))

	m.Info("svc", "never bound")
	require.NoError(t, m.Close())

	_, err := os.Stat(logPath(dir, "svc.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigureFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
folder: `+dir+`
destinations:
  - file: app.log
    modules: [app]
    level: trace
    notify: false
`)

	m := NewManager()
	require.NoError(t, m.ConfigureFromFile(path))

	m.Debug("app", "from file config")
	require.NoError(t, m.Close())

	lines := readLines(t, logPath(dir, "app.log"))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "from file config")
}
