package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// confirmDelete asks before deleting unless --force was given.
func confirmDelete(cmd *cobra.Command, id string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var ok bool
	if err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s?", id)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run(); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}
	if !ok {
		return fmt.Errorf("aborted")
	}
	return nil
}
