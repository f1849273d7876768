package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var APP_NAME = "basicc"

var DEFAULT_ENV_FILE string = `# basicc environment
BASIC_RUNTIME=/usr/local/basicc/runtime
BASIC_MAX_NAME_LEN=40
BASIC_WARNINGS=false
`

// ConfigDir returns the per-user configuration directory of appName and
// creates it if needed. XDG_CONFIG_HOME wins over the platform default on
// every system.
func ConfigDir(appName string) (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		if base, err = os.UserConfigDir(); err != nil {
			return "", errors.Wrap(err, "locating config directory")
		}
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	return dir, nil
}

// LoadEnvFile reads KEY=VALUE lines from path. A missing file is created
// with DEFAULT_ENV_FILE first.
func LoadEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteFile(path, DEFAULT_ENV_FILE); err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return env, nil
}

// Load returns the default options overridden by the user's env file.
func Load() (Options, map[string]string, error) {
	opts := Default()

	dir, err := ConfigDir(APP_NAME)
	if err != nil {
		return opts, nil, err
	}
	envs, err := LoadEnvFile(filepath.Join(dir, "env"))
	if err != nil {
		return opts, nil, err
	}
	if err := opts.ApplyEnv(envs); err != nil {
		return opts, envs, err
	}
	return opts, envs, nil
}

// WriteFile replaces the contents of path with content.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
