package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

func editorCmd() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vi"
}

func Open(filepath string) error {
	editor := editorCmd()
	cmd := exec.Command(editor, filepath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", editor, err)
	}
	return nil
}

// Edit writes initial to a scratch file named after pattern, opens it in the
// user's editor and returns what was saved.
func Edit(pattern string, initial []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "salesfirst-edit-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, pattern)
	if err := os.WriteFile(path, initial, 0600); err != nil {
		return nil, fmt.Errorf("writing scratch file: %w", err)
	}
	if err := Open(path); err != nil {
		return nil, err
	}
	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited file: %w", err)
	}
	return edited, nil
}
