package main

import (
	"path/filepath"

	"github.com/kacebover/plus-archiver/gui/controller"
)

// view is what the window shows for one controller state
type view struct {
	ArchiveText     string
	ShowArchive     bool // label instead of the select button
	DestinationText string
	ShowDestination bool

	ShowUnarchive    bool
	UnarchiveEnabled bool
	ShowReset        bool
	Busy             bool

	Records         []string
	ShowPlaceholder bool

	// Notify is the message for the information dialog, empty for none
	Notify string
}

func viewFor(s controller.State) view {
	v := view{
		ShowArchive:      s.SelectedArchive != "",
		ShowDestination:  s.DestinationFolder != "",
		ShowUnarchive:    s.SelectedArchive != "" && s.DestinationFolder != "",
		UnarchiveEnabled: s.CanExtract(),
		ShowReset:        s.CanReset(),
		Busy:             s.Busy,
		Records:          s.Records,
		ShowPlaceholder:  len(s.Records) == 0,
	}
	if v.ShowArchive {
		v.ArchiveText = "Selected File: " + filepath.Base(s.SelectedArchive)
	}
	if v.ShowDestination {
		v.DestinationText = "Destination Folder: " + filepath.Base(s.DestinationFolder)
	}
	// the announcement of a running extraction is shown inline, not as a dialog
	if !s.Busy {
		v.Notify = s.Status.Message
	}
	return v
}
