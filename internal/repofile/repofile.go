package repofile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".salesfirst-project"

// Find walks up from startDir looking for a link file and returns the linked
// project ID with the directory holding the file. Both are empty when no
// directory on the way up is linked.
func Find(startDir string) (projectID, dir string, err error) {
	dir = startDir
	for {
		id, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if id != "" {
			return id, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write links dir to projectID.
func Write(dir, projectID string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(projectID+"\n"), 0644)
}

// Read returns the trimmed project ID linked in dir, or "" when unlinked.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Remove deletes the link file in dir. It reports false when dir was not
// linked.
func Remove(dir string) (bool, error) {
	err := os.Remove(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
