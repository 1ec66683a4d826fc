package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/kacebover/plus-archiver/gui/controller"
	"github.com/kacebover/plus-archiver/logging"
	"github.com/kacebover/plus-archiver/unarchiver"
)

func main() {
	if err := Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Error:", err)
		os.Exit(1)
	}
}

// CLI is the command line grammar
type CLI struct {
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Diagnostic log level (${enum})."`

	Extract ExtractCmd `cmd:"" help:"Extract archives into a destination folder."`
	Formats FormatsCmd `cmd:"" help:"List the archive extensions that can be extracted."`
	GUI     GUICmd     `cmd:"" name:"gui" help:"Show how to launch the desktop application."`
}

// Dependencies are bound into every command's Run method
type Dependencies struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
	Config *controller.AppConfig
}

// Run executes the CLI with the given arguments.
func Run(args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("plus-archiver"),
		kong.Description("Plus Archiver extracts ZIP and TAR archives."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified, run 'plus-archiver --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.NewConsoleLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return kctx.Run(&Dependencies{
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Config: controller.LoadConfig(),
	})
}

// ExtractCmd extracts one or more archives through the workflow controller
type ExtractCmd struct {
	Dest     string   `short:"d" required:"" help:"Destination folder, must exist and be writable."`
	MaxSize  string   `name:"max-size" help:"Refuse archives that expand beyond this size, e.g. 2GB. Defaults to the configured limit."`
	Archives []string `arg:"" name:"archive" help:"Archive files to extract."`
}

func (c *ExtractCmd) Run(deps *Dependencies) error {
	limit := deps.Config.MaxExtractSize
	if c.MaxSize != "" {
		size, ok := controller.ParseFileSize(c.MaxSize)
		if !ok {
			return fmt.Errorf("invalid --max-size %q", c.MaxSize)
		}
		limit = size
	}
	if limit > 0 {
		deps.Logger.Debug("extraction size limit", zap.String("limit", controller.FormatFileSize(limit)))
	}

	u := unarchiver.New(unarchiver.Config{
		MaxSize:    limit,
		BufferSize: unarchiver.DefaultConfig().BufferSize,
		Logger:     deps.Logger,
	})
	ctrl := controller.NewController(u, deps.Logger)
	ctrl.SetOnStatus(func(s controller.Status) {
		fmt.Fprintln(deps.Stdout, statusIcon(s.Kind), s.Message)
	})

	if err := ctrl.SelectDestination(c.Dest, nil); err != nil {
		return err
	}

	failed := 0
	for _, archive := range c.Archives {
		if err := ctrl.SelectArchive(archive, nil); err != nil {
			failed++
			continue
		}
		if err := ctrl.Extract(); err != nil {
			failed++
		}
	}

	printRecords(deps.Stdout, ctrl.Records())

	if failed > 0 {
		return fmt.Errorf("%d of %d archives failed", failed, len(c.Archives))
	}
	return nil
}

func statusIcon(kind controller.StatusKind) string {
	switch kind {
	case controller.StatusSuccess:
		return "✅"
	case controller.StatusError:
		return "❌"
	default:
		return "📦"
	}
}

func printRecords(w io.Writer, records []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Unarchived files:")
	if len(records) == 0 {
		fmt.Fprintln(w, "  No files unarchived yet")
		return
	}
	for i, name := range records {
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
	}
}

// FormatsCmd prints the supported extensions
type FormatsCmd struct{}

func (c *FormatsCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Supported archive extensions:")
	for _, ext := range unarchiver.Extensions() {
		format := unarchiver.ByExtension("archive" + ext)
		kind := "archive"
		if format.Stream() {
			kind = "compressed tar or single file"
		}
		fmt.Fprintf(deps.Stdout, "  %-6s %-6s %s\n", ext, format, kind)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Files are identified by content first; lz4 and s2 streams need their extension.")
	return nil
}

// GUICmd prints how to run the desktop build
type GUICmd struct{}

func (c *GUICmd) Run(deps *Dependencies) error {
	LaunchGUI(deps.Stdout)
	return nil
}
