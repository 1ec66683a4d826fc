// Package controller provides the bridge between the UI and the unarchiver
package controller

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/kacebover/plus-archiver/logging"
)

// Decompressor extracts every entry of src into dst.
// *unarchiver.Unarchiver satisfies it.
type Decompressor interface {
	Unzip(src, dst string, overwrite bool, password *string) error
}

// StatusKind classifies a status message for presentation
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusSuccess
	StatusError
)

// Status is the outcome of the last action
type Status struct {
	Kind    StatusKind
	Message string
}

const (
	msgFileUnreadable   = "File is not readable."
	msgFolderUnwritable = "Folder is not writable."
	msgExtracted        = "File successfully unarchived!"
	msgReset            = "Operation reset."
)

// State is a snapshot of the controller handed to observers
type State struct {
	SelectedArchive   string
	DestinationFolder string
	Records           []string // base names of extracted archives, oldest first
	Status            Status
	Busy              bool
}

// CanExtract reports whether the Unarchive action may be offered.
func (s State) CanExtract() bool {
	return s.SelectedArchive != "" && s.DestinationFolder != "" && !s.Busy
}

// CanReset reports whether there is a selection to clear.
func (s State) CanReset() bool {
	return s.SelectedArchive != "" || s.DestinationFolder != ""
}

// Controller manages the select, extract and reset workflow and notifies
// the UI after every change
type Controller struct {
	decompressor Decompressor
	log          *zap.Logger

	// Callbacks
	cbMu          sync.RWMutex
	onStateChange func(State)
	onStatus      func(Status)

	// State
	mu          sync.RWMutex
	archive     string
	destination string
	records     []string
	status      Status
	busy        bool
}

// NewController creates a controller that extracts with d. A nil logger
// disables logging.
func NewController(d Decompressor, logger *zap.Logger) *Controller {
	return &Controller{
		decompressor: d,
		log:          logging.OrNop(logger),
		records:      make([]string, 0),
	}
}

// SetOnStateChange sets the callback invoked after every state change
func (c *Controller) SetOnStateChange(callback func(State)) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.onStateChange = callback
}

// SetOnStatus sets the callback invoked whenever an action sets a status message
func (c *Controller) SetOnStatus(callback func(Status)) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.onStatus = callback
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Records returns the names of the archives extracted this session
func (c *Controller) Records() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.records...)
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() State {
	return State{
		SelectedArchive:   c.archive,
		DestinationFolder: c.destination,
		Records:           append([]string(nil), c.records...),
		Status:            c.status,
		Busy:              c.busy,
	}
}

// SelectArchive records the path returned by the file picker. pickErr is
// the picker's own failure, if any. A rejected selection leaves any
// previously selected archive in place.
func (c *Controller) SelectArchive(path string, pickErr error) error {
	var err error

	c.mu.Lock()
	switch {
	case pickErr != nil:
		err = &PickerError{Target: PickArchive, Err: pickErr}
		c.status = Status{Kind: StatusError, Message: fmt.Sprintf("Failed to select file: %v", pickErr)}
	default:
		if checkErr := checkReadableFile(path); checkErr != nil {
			err = &UnreadableFileError{Path: path, Err: checkErr}
			c.status = Status{Kind: StatusError, Message: msgFileUnreadable}
		} else {
			c.archive = path
			c.status = Status{}
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("archive selection rejected", zap.String("path", path), zap.Error(err))
	} else {
		c.log.Info("archive selected", zap.String("path", path))
	}
	c.notify()
	return err
}

// SelectDestination records the directory returned by the folder picker.
// It mirrors SelectArchive but requires a writable directory.
func (c *Controller) SelectDestination(path string, pickErr error) error {
	var err error

	c.mu.Lock()
	switch {
	case pickErr != nil:
		err = &PickerError{Target: PickDestination, Err: pickErr}
		c.status = Status{Kind: StatusError, Message: fmt.Sprintf("Failed to select folder: %v", pickErr)}
	default:
		if checkErr := checkWritableDir(path); checkErr != nil {
			err = &UnwritableFolderError{Path: path, Err: checkErr}
			c.status = Status{Kind: StatusError, Message: msgFolderUnwritable}
		} else {
			c.destination = path
			c.status = Status{}
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("destination selection rejected", zap.String("path", path), zap.Error(err))
	} else {
		c.log.Info("destination selected", zap.String("path", path))
	}
	c.notify()
	return err
}

// Extract unpacks the selected archive into the destination folder,
// overwriting files that already exist. It blocks until the decompressor
// returns. Observers are notified once when extraction starts and once
// when it ends.
//
// On failure the selections are kept so the user can retry.
func (c *Controller) Extract() error {
	c.mu.Lock()
	if c.archive == "" || c.destination == "" {
		c.mu.Unlock()
		return ErrNotReady
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	src, dst := c.archive, c.destination
	c.status = Status{
		Kind:    StatusInfo,
		Message: fmt.Sprintf("Unarchiving file: %s to destination: %s", src, dst),
	}
	c.mu.Unlock()

	c.log.Info("extraction started", zap.String("source", src), zap.String("destination", dst))
	c.notify()

	unzipErr := c.decompressor.Unzip(src, dst, true, nil)

	var err error
	c.mu.Lock()
	c.busy = false
	if unzipErr != nil {
		err = &ExtractionError{Source: src, Destination: dst, Err: unzipErr}
		c.status = Status{Kind: StatusError, Message: fmt.Sprintf("Failed to unarchive file: %v", unzipErr)}
	} else {
		c.records = append(c.records, filepath.Base(src))
		c.status = Status{Kind: StatusSuccess, Message: msgExtracted}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Error("extraction failed", zap.String("source", src), zap.Error(unzipErr))
	} else {
		c.log.Info("extraction finished", zap.String("source", src))
	}
	c.notify()
	return err
}

// Reset clears both selections. The extraction records are kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.archive = ""
	c.destination = ""
	c.status = Status{Kind: StatusInfo, Message: msgReset}
	c.mu.Unlock()

	c.log.Info("selection reset")
	c.notify()
}

// notify emits the current state, and the status if one is set.
// Callbacks run without locks held so they may call back into the controller.
func (c *Controller) notify() {
	state := c.State()

	c.cbMu.RLock()
	onStateChange, onStatus := c.onStateChange, c.onStatus
	c.cbMu.RUnlock()

	if onStateChange != nil {
		onStateChange(state)
	}
	if onStatus != nil && state.Status.Message != "" {
		onStatus(state.Status)
	}
}
