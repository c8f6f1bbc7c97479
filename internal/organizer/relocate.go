package organizer

import (
	"errors"
	"io/fs"
	"os"

	"snapsort/internal/fileutil"
	"snapsort/internal/outcome"
	"snapsort/internal/planner"
)

// Relocator applies a plan to the filesystem.
type Relocator struct {
	// DryRun reports what would happen without touching any file.
	DryRun bool
}

// Apply carries out plan and returns the resulting status. On error the
// source is still in place.
func (r Relocator) Apply(plan planner.Plan) (outcome.Status, error) {
	if r.DryRun {
		return outcome.StatusPlanned, nil
	}
	switch plan.Action {
	case planner.ActionDiscard:
		if err := os.Remove(plan.Source); err != nil {
			return outcome.StatusFailed, outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "discard duplicate", plan.Source, err)
		}
		return outcome.StatusDiscarded, nil
	case planner.ActionDeleteLeftover:
		if err := os.Remove(plan.Source); err != nil {
			return outcome.StatusFailed, outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "delete leftover", plan.Source, err)
		}
		return outcome.StatusLeftover, nil
	case planner.ActionMove:
		if err := move(plan); err != nil {
			return outcome.StatusFailed, err
		}
		return outcome.StatusRelocated, nil
	default:
		return outcome.StatusFailed, outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "apply plan", "unknown action "+string(plan.Action), nil)
	}
}

// move renames the source into place, creating the destination folder and
// retrying exactly once when the first attempt finds it missing.
func move(plan planner.Plan) error {
	err := fileutil.MoveFile(plan.Source, plan.Destination)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "move", plan.Destination, err)
	}
	if _, statErr := os.Lstat(plan.Source); statErr != nil {
		return outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "move", "source vanished", statErr)
	}
	if mkErr := os.MkdirAll(plan.Folder, 0o755); mkErr != nil {
		return outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "create folder", plan.Folder, mkErr)
	}
	if err := fileutil.MoveFile(plan.Source, plan.Destination); err != nil {
		return outcome.Wrap(outcome.ErrRelocationFailed, "relocate", "move after creating folder", plan.Destination, err)
	}
	return nil
}
