package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"snapsort/internal/capturedate"
	"snapsort/internal/outcome"
)

// Action tells the relocator what to do with a source file.
type Action string

const (
	// ActionMove moves the source to Plan.Destination.
	ActionMove Action = "move"
	// ActionDiscard deletes the source because Plan.Destination already holds
	// the same file.
	ActionDiscard Action = "discard"
	// ActionDeleteLeftover deletes a zero-byte source without relocating it.
	ActionDeleteLeftover Action = "delete_leftover"
)

// Plan is the outcome of planning one file against the live output tree.
type Plan struct {
	Action      Action
	Source      string
	Folder      string
	FileName    string
	Suffix      int
	Destination string
}

// ContentCompare reports whether two equally sized files hold the same bytes.
type ContentCompare func(a, b string) (bool, error)

// Planner computes destinations under Root.
type Planner struct {
	Root string
	// SameContent, when set, must confirm a size match before the source is
	// treated as a duplicate. Nil means size equality alone decides.
	SameContent ContentCompare
}

// Folder returns {root}/{year}/{month} with unpadded components.
func Folder(root string, date capturedate.Date) string {
	return filepath.Join(root, strconv.Itoa(date.Year), strconv.Itoa(date.Month))
}

// BaseName returns YYYY_MM_DD_HH_mm_ss with every field after the year padded to two digits.
func BaseName(date capturedate.Date) string {
	return fmt.Sprintf("%d_%02d_%02d_%02d_%02d_%02d",
		date.Year, date.Month, date.Day, date.Hour, date.Minute, date.Second)
}

// FileName returns the canonical name, with _{suffix} before the extension
// when suffix is positive.
func FileName(date capturedate.Date, ext string, suffix int) string {
	base := BaseName(date)
	if suffix > 0 {
		base += "_" + strconv.Itoa(suffix)
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// Key identifies the unsuffixed canonical destination. Files sharing a key
// compete for the same suffix sequence.
func (p Planner) Key(date capturedate.Date, ext string) string {
	return filepath.Join(Folder(p.Root, date), FileName(date, ext, 0))
}

// Plan decides where source goes. It reads the filesystem: the source size
// and whatever already exists at the canonical destination and its suffixed
// variants.
func (p Planner) Plan(source string, date capturedate.Date, ext string) (Plan, error) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return Plan{}, outcome.Wrap(outcome.ErrRelocationFailed, "plan", "stat source", source, err)
	}

	plan := Plan{
		Source:   source,
		Folder:   Folder(p.Root, date),
		FileName: FileName(date, ext, 0),
	}
	plan.Destination = filepath.Join(plan.Folder, plan.FileName)

	if srcInfo.Size() == 0 {
		plan.Action = ActionDeleteLeftover
		plan.Destination = ""
		return plan, nil
	}

	dstInfo, exists, err := lstat(plan.Destination)
	if err != nil {
		return Plan{}, outcome.Wrap(outcome.ErrRelocationFailed, "plan", "stat destination", plan.Destination, err)
	}
	if !exists {
		plan.Action = ActionMove
		return plan, nil
	}

	duplicate, err := p.isDuplicate(source, srcInfo, plan.Destination, dstInfo)
	if err != nil {
		return Plan{}, outcome.Wrap(outcome.ErrRelocationFailed, "plan", "compare duplicate", plan.Destination, err)
	}
	if duplicate {
		plan.Action = ActionDiscard
		return plan, nil
	}

	for suffix := 1; ; suffix++ {
		name := FileName(date, ext, suffix)
		candidate := filepath.Join(plan.Folder, name)
		_, exists, err := lstat(candidate)
		if err != nil {
			return Plan{}, outcome.Wrap(outcome.ErrRelocationFailed, "plan", "probe suffix", candidate, err)
		}
		if !exists {
			plan.Action = ActionMove
			plan.FileName = name
			plan.Suffix = suffix
			plan.Destination = candidate
			return plan, nil
		}
	}
}

func (p Planner) isDuplicate(source string, srcInfo os.FileInfo, dest string, dstInfo os.FileInfo) (bool, error) {
	if !dstInfo.Mode().IsRegular() || dstInfo.Size() != srcInfo.Size() {
		return false, nil
	}
	if p.SameContent == nil {
		return true, nil
	}
	return p.SameContent(source, dest)
}

func lstat(path string) (os.FileInfo, bool, error) {
	info, err := os.Lstat(path)
	if err == nil {
		return info, true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, err
}
