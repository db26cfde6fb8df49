package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	assert.NotNil(t, defaultConfig())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr bool
	}{
		"default is valid": {
			mutate: func(c *Configuration) {},
		},
		"missing username": {
			mutate:  func(c *Configuration) { c.Username = "" },
			wantErr: true,
		},
		"bad hostname": {
			mutate:  func(c *Configuration) { c.Uname.Nodename = "not a hostname!" },
			wantErr: true,
		},
		"missing kernel name": {
			mutate:  func(c *Configuration) { c.Uname.KernelName = "" },
			wantErr: true,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitializeAndLoad(t *testing.T) {
	td := t.TempDir()
	logger := log.New(ioutil.Discard, "", 0)

	cfg, err := Initialize(td, logger)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Initializing twice fails rather than overwriting edits.
	_, err = Initialize(td, logger)
	assert.Error(t, err)

	loaded, err := Load(td)
	require.NoError(t, err)
	assert.Equal(t, cfg.Username, loaded.Username)

	// Load accepts the config file path too.
	loaded, err = Load(filepath.Join(td, ConfigurationName))
	require.NoError(t, err)
	assert.Equal(t, cfg.Uname.Nodename, loaded.Uname.Nodename)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().Username, cfg.Username)

	// A broken config is an error rather than a silent fallback.
	td := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(td, ConfigurationName), []byte("username: [oops"), 0644))
	_, err = LoadOrDefault(td)
	assert.Error(t, err)
}
