package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/chazuruo/histclean/internal/app"
)

// confirmRewrite asks whether the history file may be overwritten.
func confirmRewrite(res *app.Result) (bool, error) {
	description := fmt.Sprintf("%d of %d entries will be removed (%d by date, %d duplicates).",
		res.Removed(), res.Before, res.RemovedByDate, res.RemovedDuplicates)

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Rewrite %s?", res.Path)).
				Description(description).
				Affirmative("Rewrite").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}
