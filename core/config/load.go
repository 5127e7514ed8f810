package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

const hostKeyBits = 2048

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads and validates the configuration stored at the root of fs.
func LoadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = fs
	return &out, nil
}

// Initialize creates a configuration directory with the default config, a new
// host key and the directory for session recordings. Existing files are kept.
func Initialize(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
}

// InitializeFs is Initialize for an arbitrary filesystem.
func InitializeFs(fs afero.Fs, logger *log.Logger) error {
	if err := writeIfMissing(fs, ConfigurationName, logger, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return err
	}

	cfg, err := LoadFs(fs)
	if err != nil {
		return err
	}

	if err := writeIfMissing(fs, cfg.SSHHostKey, logger, generateHostKey); err != nil {
		return err
	}

	logger.Printf("Creating %s\n", LogsDirName)
	if err := fs.MkdirAll(LogsDirName, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", LogsDirName, err)
	}
	return nil
}

func writeIfMissing(fs afero.Fs, name string, logger *log.Logger, contents func() ([]byte, error)) error {
	switch exists, err := afero.Exists(fs, name); {
	case err != nil:
		return err
	case exists:
		logger.Printf("Keeping existing %s\n", name)
		return nil
	}

	logger.Printf("Writing %s\n", name)
	data, err := contents()
	if err != nil {
		return fmt.Errorf("generating %s: %w", name, err)
	}
	if err := afero.WriteFile(fs, name, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func generateHostKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, hostKeyBits)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}
