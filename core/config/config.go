package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/vfs"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	AppLogName        = "app.log"
	EventLogName      = "events.log"
)

type Configuration struct {
	configFs afero.Fs

	Hostname   string `json:"hostname" validate:"required,hostname_rfc1123"`
	Username   string `json:"username" validate:"required,excludes=/"`
	Identity   string `json:"identity" validate:"required"`
	Motd       string `json:"motd"`
	SSHPort    int    `json:"ssh_port" validate:"gte=0,lte=65535"`
	SSHHostKey string `json:"ssh_host_key" validate:"required"`

	Packages       []string   `json:"packages" validate:"unique,dive,required"`
	NpmExecutables []string   `json:"npm_executables" validate:"unique,dive,required"`
	HomeFiles      []vfs.File `json:"home_files" validate:"unique=Name,dive"`

	Network Network `json:"network"`
}

type Network struct {
	Mode                string `json:"mode" validate:"oneof=exec stub disabled"`
	NmapTimeoutSeconds  int    `json:"nmap_timeout_seconds" validate:"gt=0"`
	FetchLimit          int    `json:"fetch_limit" validate:"gt=0"`
	FetchBytesPerSecond int64  `json:"fetch_bytes_per_second" validate:"gt=0"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// SessionOptions converts the configuration into the settings for a new
// session. Each call returns independent slices.
func (c *Configuration) SessionOptions() session.Options {
	return session.Options{
		User:           c.Username,
		Hostname:       c.Hostname,
		Identity:       c.Identity,
		HomeFiles:      append([]vfs.File{}, c.HomeFiles...),
		Packages:       append([]string{}, c.Packages...),
		NpmExecutables: append([]string{}, c.NpmExecutables...),
	}
}

// NetworkOptions converts the configuration into network tool settings.
func (c *Configuration) NetworkOptions() nettools.Options {
	return nettools.Options{
		Mode:                c.Network.Mode,
		NmapTimeout:         time.Duration(c.Network.NmapTimeoutSeconds) * time.Second,
		FetchLimit:          c.Network.FetchLimit,
		FetchBytesPerSecond: c.Network.FetchBytesPerSecond,
	}
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// CreateSessionLog creates a recording file with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// OpenSessionLog opens an existing recording.
func (c *Configuration) OpenSessionLog(name string) (afero.File, error) {
	return c.fs().Open(filepath.Join(LogsDirName, name))
}

// ListSessionLogs returns the names of the stored recordings, sorted.
func (c *Configuration) ListSessionLogs() ([]string, error) {
	infos, err := afero.ReadDir(c.fs(), LogsDirName)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, info := range infos {
		if !info.IsDir() {
			out = append(out, info.Name())
		}
	}
	return out, nil
}

// PrivateKeyPem returns the bytes of the private key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), c.SSHHostKey)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// OpenEventLog opens the structured session event log in an append only
// state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration backed by an in-memory
// filesystem.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}
