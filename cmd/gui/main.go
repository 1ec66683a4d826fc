package main

import (
	"errors"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/kacebover/plus-archiver/gui/controller"
	"github.com/kacebover/plus-archiver/logging"
	"github.com/kacebover/plus-archiver/unarchiver"
)

const appTitle = "Plus Archiver"

// ArchiverGUI represents the GUI application
type ArchiverGUI struct {
	app    fyne.App
	window fyne.Window
	ctrl   *controller.Controller
	config *controller.AppConfig
	log    *zap.Logger

	// Selection
	archiveLabel     *widget.Label
	destinationLabel *widget.Label
	selectArchiveBtn *widget.Button
	selectDestBtn    *widget.Button
	unarchiveButton  *widget.Button
	resetButton      *widget.Button
	activity         *widget.ProgressBarInfinite
	statusLabel      *widget.Label

	// History
	historyList *widget.List
	placeholder *widget.Label
	records     []string
}

// NewArchiverGUI creates a new GUI instance
func NewArchiverGUI() *ArchiverGUI {
	config := controller.LoadConfig()

	logger, err := logging.NewLogger(config.LogLevel)
	if err != nil {
		logger = zap.NewNop()
	}

	u := unarchiver.New(unarchiver.Config{
		MaxSize:    config.MaxExtractSize,
		BufferSize: unarchiver.DefaultConfig().BufferSize,
		Logger:     logger,
	})

	a := app.NewWithID("io.plusdata.plusarchiver")
	w := a.NewWindow(appTitle)
	w.Resize(fyne.NewSize(float32(config.WindowWidth), float32(config.WindowHeight)))
	w.CenterOnScreen()

	g := &ArchiverGUI{
		app:     a,
		window:  w,
		ctrl:    controller.NewController(u, logger),
		config:  config,
		log:     logger,
		records: make([]string, 0),
	}

	g.buildUI()
	g.ctrl.SetOnStateChange(func(s controller.State) {
		fyne.Do(func() { g.render(s) })
	})
	g.render(g.ctrl.State())
	return g
}

func (g *ArchiverGUI) buildUI() {
	// === HISTORY PANEL ===
	historyTitle := widget.NewLabelWithStyle("Unarchived Files", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.placeholder = widget.NewLabel("No files unarchived yet")
	g.placeholder.Importance = widget.LowImportance

	g.historyList = widget.NewList(
		func() int { return len(g.records) },
		func() fyne.CanvasObject { return widget.NewLabel("archive.zip") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.records[id])
		},
	)

	historyPanel := container.NewBorder(
		container.NewVBox(historyTitle, g.placeholder),
		nil, nil, nil,
		g.historyList,
	)

	// === MAIN PANEL ===
	titleText := canvas.NewText(appTitle, theme.ForegroundColor())
	titleText.TextSize = 28
	titleText.TextStyle.Bold = true
	titleText.Alignment = fyne.TextAlignCenter

	g.archiveLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.archiveLabel.Truncation = fyne.TextTruncateEllipsis
	g.selectArchiveBtn = widget.NewButtonWithIcon("Select File to Unarchive", theme.FileIcon(), g.onSelectArchive)

	g.destinationLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.destinationLabel.Truncation = fyne.TextTruncateEllipsis
	g.selectDestBtn = widget.NewButtonWithIcon("Select Destination Folder", theme.FolderOpenIcon(), g.onSelectDestination)

	g.unarchiveButton = widget.NewButtonWithIcon("Unarchive", theme.DownloadIcon(), g.onUnarchive)
	g.unarchiveButton.Importance = widget.HighImportance

	g.resetButton = widget.NewButtonWithIcon("Start Over", theme.ViewRefreshIcon(), g.ctrl.Reset)

	g.activity = widget.NewProgressBarInfinite()
	g.statusLabel = widget.NewLabel("")
	g.statusLabel.Wrapping = fyne.TextWrapWord

	mainPanel := container.NewVBox(
		titleText,
		widget.NewSeparator(),
		g.archiveLabel,
		g.selectArchiveBtn,
		g.destinationLabel,
		g.selectDestBtn,
		g.unarchiveButton,
		g.resetButton,
		g.activity,
		g.statusLabel,
	)

	split := container.NewHSplit(historyPanel, container.NewPadded(mainPanel))
	split.SetOffset(0.35)
	g.window.SetContent(container.NewPadded(split))
}

// render applies a controller state to the widgets. Must run on the UI goroutine.
func (g *ArchiverGUI) render(s controller.State) {
	v := viewFor(s)

	g.archiveLabel.SetText(v.ArchiveText)
	setVisible(g.archiveLabel, v.ShowArchive)
	setVisible(g.selectArchiveBtn, !v.ShowArchive)

	g.destinationLabel.SetText(v.DestinationText)
	setVisible(g.destinationLabel, v.ShowDestination)
	setVisible(g.selectDestBtn, !v.ShowDestination)

	setVisible(g.unarchiveButton, v.ShowUnarchive)
	if v.UnarchiveEnabled {
		g.unarchiveButton.Enable()
	} else {
		g.unarchiveButton.Disable()
	}
	setVisible(g.resetButton, v.ShowReset)

	if v.Busy {
		g.activity.Start()
		g.activity.Show()
	} else {
		g.activity.Stop()
		g.activity.Hide()
	}
	g.statusLabel.SetText(s.Status.Message)

	g.records = v.Records
	setVisible(g.placeholder, v.ShowPlaceholder)
	g.historyList.Refresh()

	if v.Notify != "" {
		dialog.ShowInformation(appTitle, v.Notify, g.window)
	}
	if s.Status.Kind == controller.StatusSuccess && len(s.Records) > 0 {
		g.app.SendNotification(&fyne.Notification{
			Title:   appTitle,
			Content: "Unarchived " + s.Records[len(s.Records)-1],
		})
	}
}

func setVisible(obj fyne.CanvasObject, visible bool) {
	if visible {
		obj.Show()
	} else {
		obj.Hide()
	}
}

func (g *ArchiverGUI) onSelectArchive() {
	pickArchive(g.window, g.config.LastArchiveDir, func(path string, err error) {
		if path == "" && err == nil {
			return // cancelled
		}
		if g.ctrl.SelectArchive(path, err) == nil {
			g.rememberDir(&g.config.LastArchiveDir, filepath.Dir(path))
		}
	})
}

func (g *ArchiverGUI) onSelectDestination() {
	pickFolder(g.window, g.config.LastDestinationDir, func(path string, err error) {
		if path == "" && err == nil {
			return // cancelled
		}
		if g.ctrl.SelectDestination(path, err) == nil {
			g.rememberDir(&g.config.LastDestinationDir, path)
		}
	})
}

// onUnarchive runs the extraction off the UI goroutine; the controller's
// state callback brings the result back through fyne.Do.
func (g *ArchiverGUI) onUnarchive() {
	g.unarchiveButton.Disable()
	go func() {
		err := g.ctrl.Extract()
		if errors.Is(err, controller.ErrNotReady) || errors.Is(err, controller.ErrBusy) {
			g.log.Warn("unarchive requested while unavailable", zap.Error(err))
		}
	}()
}

func (g *ArchiverGUI) rememberDir(field *string, dir string) {
	fyne.Do(func() {
		*field = dir
		if err := controller.SaveConfig(g.config); err != nil {
			g.log.Warn("failed to save config", zap.Error(err))
		}
	})
}

func (g *ArchiverGUI) Run() {
	g.window.ShowAndRun()
	_ = g.log.Sync()
}

func main() {
	gui := NewArchiverGUI()
	gui.Run()
}
