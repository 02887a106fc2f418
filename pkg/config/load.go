package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/motiongrid/pkg/log"
	"github.com/tauraamui/xerror"
)

const (
	vendorName     = "tacusci"
	appName        = "motiongrid"
	configFileName = "motiongrid.json"
	configPathEnv  = "MOTIONGRID_CONFIG"
)

var fs = afero.NewOsFs()

// loadDefaults reads the optional defaults file. An absent file is not
// an error, the zero values apply.
func loadDefaults() (Values, error) {
	var values Values

	configPath, err := resolveConfigPath()
	if err != nil {
		return values, err
	}

	exists, err := afero.Exists(fs, configPath)
	if err != nil || !exists {
		return values, nil
	}

	log.Debug("Resolved defaults file location: %s", configPath)
	content, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return Values{}, errors.Wrapf(err, "unable to read from path %s", configPath)
	}

	if err := unmarshal(content, &values); err != nil {
		return Values{}, err
	}

	return values, nil
}

func unmarshal(content []byte, values *Values) error {
	if err := json.Unmarshal(content, values); err != nil {
		return errors.Errorf("parsing defaults file error: %v", err)
	}
	return nil
}

func resolveConfigPath() (string, error) {
	configPath := os.Getenv(configPathEnv)
	if len(configPath) > 0 {
		return configPath, nil
	}

	configParentDir, err := userConfigDir()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s location: %w", configFileName, err)
	}

	return filepath.Join(
		configParentDir,
		vendorName,
		appName,
		configFileName), nil
}

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}
