package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/pkg"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/vfs"
	"github.com/spf13/afero"
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
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_matchesPackageDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, session.DefaultHostname, cfg.Hostname)
	assert.Equal(t, vfs.DefaultUser, cfg.Username)
	assert.Equal(t, session.DefaultIdentity, cfg.Identity)
	assert.Equal(t, session.DefaultNpmExecutables, cfg.NpmExecutables)
	assert.Equal(t, vfs.DefaultHomeFiles, cfg.HomeFiles)
	assert.ElementsMatch(t, pkg.DefaultPackages, cfg.Packages)
}

func TestConfiguration_NetworkOptions(t *testing.T) {
	opts := Default().NetworkOptions()

	assert.Equal(t, nettools.Options{
		Mode:                nettools.ModeStub,
		NmapTimeout:         30 * time.Second,
		FetchLimit:          nettools.DefaultFetchLimit,
		FetchBytesPerSecond: nettools.DefaultFetchBytesPerSecond,
	}, opts)

	_, err := nettools.New(opts)
	assert.NoError(t, err)
}

func TestConfiguration_SessionOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.SessionOptions()
	opts.Packages[0] = "changed"

	assert.NotEqual(t, "changed", cfg.Packages[0])

	s := session.New(cfg.SessionOptions())
	assert.Equal(t, "/home/user", s.HomePath())
	assert.Equal(t, "welcome.txt  notes.txt", s.FS.List(""))
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Configuration)
		field  string
	}{
		"bad hostname":     {func(c *Configuration) { c.Hostname = "not a host" }, "hostname"},
		"username slash":   {func(c *Configuration) { c.Username = "a/b" }, "username"},
		"port range":       {func(c *Configuration) { c.SSHPort = 70000 }, "ssh_port"},
		"duplicate pkg":    {func(c *Configuration) { c.Packages = []string{"vim", "vim"} }, "packages"},
		"empty pkg":        {func(c *Configuration) { c.Packages = []string{""} }, "packages[0]"},
		"home file slash":  {func(c *Configuration) { c.HomeFiles = []vfs.File{{Name: "a/b"}} }, "name"},
		"network mode":     {func(c *Configuration) { c.Network.Mode = "turbo" }, "mode"},
		"nmap timeout":     {func(c *Configuration) { c.Network.NmapTimeoutSeconds = 0 }, "nmap_timeout_seconds"},
		"missing host key": {func(c *Configuration) { c.SSHHostKey = "" }, "ssh_host_key"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs())
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := append(append([]byte{}, defaultConfigData...), []byte("\nextra: true\n")...)
		require.NoError(t, afero.WriteFile(fs, ConfigurationName, data, 0600))

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := strings.Replace(string(defaultConfigData), "mode: stub", "mode: turbo", 1)
		require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte(data), 0600))

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})
}
