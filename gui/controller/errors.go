package controller

import (
	"errors"
	"fmt"
)

// Precondition errors. The presentation layer is expected to hide the
// Unarchive action in these states, so seeing one is a caller bug.
var (
	ErrNotReady = errors.New("archive and destination must both be selected")
	ErrBusy     = errors.New("an extraction is already in progress")
)

// PickerTarget names which picker produced a PickerError.
type PickerTarget int

const (
	PickArchive PickerTarget = iota
	PickDestination
)

func (p PickerTarget) String() string {
	if p == PickDestination {
		return "folder"
	}
	return "file"
}

// PickerError reports that the file or folder picker itself failed,
// including a cancellation the picker chose to report as an error.
type PickerError struct {
	Target PickerTarget
	Err    error
}

func (e *PickerError) Error() string {
	return fmt.Sprintf("failed to select %s: %v", e.Target, e.Err)
}

func (e *PickerError) Unwrap() error { return e.Err }

// UnreadableFileError reports a selected archive that is missing,
// not a regular file, or cannot be opened for reading.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("file is not readable: %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// UnwritableFolderError reports a selected destination that is missing,
// not a directory, or does not accept new files.
type UnwritableFolderError struct {
	Path string
	Err  error
}

func (e *UnwritableFolderError) Error() string {
	return fmt.Sprintf("folder is not writable: %s: %v", e.Path, e.Err)
}

func (e *UnwritableFolderError) Unwrap() error { return e.Err }

// ExtractionError carries the decompression failure.
type ExtractionError struct {
	Source      string
	Destination string
	Err         error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to unarchive %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
