//go:build windows

package fileutil

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsCrossDevice reports whether err is a rename failure across volumes.
func IsCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
