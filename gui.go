package main

import (
	"fmt"
	"io"
)

// LaunchGUI explains how to start the desktop application from cmd/gui.
func LaunchGUI(w io.Writer) {
	fmt.Fprintln(w, "To launch the desktop version, build the GUI from cmd/gui:")
	fmt.Fprintln(w, "  go build -o plus-archiver-gui ./cmd/gui")
	fmt.Fprintln(w, "Then run: ./plus-archiver-gui")
}
