package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Default returns the embedded default configuration.
func Default() *Configuration {
	var out Configuration
	// Load failure here is a build defect, not a runtime condition.
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Load reads the configuration from dir on fsys. A missing config file is
// not an error; the defaults apply. Fields omitted from the file keep their
// default values.
func Load(fsys afero.Fs, dir string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(dir) == ConfigurationName {
		dir = filepath.Dir(dir)
	}

	out := Default()
	out.Dir = dir

	contents, err := afero.ReadFile(fsys, filepath.Join(dir, ConfigurationName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Initialize writes the default configuration into dir unless one already
// exists, then loads it.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	path := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Printf("%s already exists, leaving as-is", path)
	} else {
		if err := afero.WriteFile(fsys, path, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("created %s", path)
	}

	return Load(fsys, dir)
}
