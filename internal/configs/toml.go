package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes a struct to a TOML file, creating parent directories
// as needed.
func SaveTOML(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML reads a TOML file into a struct.
func LoadTOML(path string, data any) error {
	_, err := toml.DecodeFile(path, data)
	return err
}
