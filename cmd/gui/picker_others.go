//go:build !linux

package main

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	nativedialog "github.com/sqweek/dialog"

	"github.com/kacebover/plus-archiver/unarchiver"
)

// pickArchive shows a native sqweek file chooser on Windows and macOS.
// A cancelled dialog reports an empty path and a nil error.
func pickArchive(_ fyne.Window, startDir string, cb func(path string, err error)) {
	exts := make([]string, 0, len(unarchiver.Extensions()))
	for _, ext := range unarchiver.Extensions() {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}

	// sqweek blocks the calling thread
	go func() {
		b := nativedialog.File().Filter("Archives", exts...).Title("Select File to Unarchive")
		if startDir != "" {
			b = b.SetStartDir(startDir)
		}
		path, err := b.Load()
		if errors.Is(err, nativedialog.ErrCancelled) {
			cb("", nil)
			return
		}
		cb(path, err)
	}()
}

// pickFolder shows a native sqweek directory chooser.
func pickFolder(_ fyne.Window, startDir string, cb func(path string, err error)) {
	go func() {
		b := nativedialog.Directory().Title("Select Destination Folder")
		if startDir != "" {
			b = b.SetStartDir(startDir)
		}
		path, err := b.Browse()
		if errors.Is(err, nativedialog.ErrCancelled) {
			cb("", nil)
			return
		}
		cb(path, err)
	}()
}
