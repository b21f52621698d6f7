package hostinterface

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetGameDir returns the directory of the game executable. It will not account for symlinks.
func GetGameDir() (string, error) {
	executablePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable directory: %w", err)
	}
	return filepath.Dir(executablePath), nil
}
