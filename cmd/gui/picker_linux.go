//go:build linux

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/kacebover/plus-archiver/unarchiver"
)

// pickArchive shows the Fyne file dialog filtered to archive extensions.
// A cancelled dialog reports an empty path and a nil error.
func pickArchive(w fyne.Window, startDir string, cb func(path string, err error)) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if rc == nil {
			cb("", nil)
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		cb(path, nil)
	}, w)
	d.SetFilter(storage.NewExtensionFileFilter(unarchiver.Extensions()))
	setStart(d, startDir)
	d.Show()
}

// pickFolder shows the Fyne folder dialog.
func pickFolder(w fyne.Window, startDir string, cb func(path string, err error)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if uri == nil {
			cb("", nil)
			return
		}
		cb(uri.Path(), nil)
	}, w)
	setStart(d, startDir)
	d.Show()
}

func setStart(d *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	d.SetLocation(lister)
}
