package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
	"github.com/reoring/jsondoc/source/gojson"
)

// app holds the persistent flags and the logger shared by every command.
type app struct {
	verbose    bool
	driver     string
	duplicates string
	maxDepth   int
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:   "jsondoc",
		Short: "Inspect, edit and validate JSON documents",
		Long: `jsondoc reads JSON (or YAML) documents, addresses nodes with JSON Pointer,
dot or bracket paths, merges documents, and infers or checks JSON Schemas.
Object key order is preserved everywhere.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			switch a.driver {
			case "", "encoding/json":
				jsondoc.UseDefaultJSONDriver()
			case "go-json":
				jsondoc.SetJSONDriver(gojson.Driver())
			default:
				return fmt.Errorf("unknown driver %q (want encoding/json or go-json)", a.driver)
			}
			a.logger.Debug("jsondoc: driver selected", "driver", jsondoc.CurrentJSONDriver().Name())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.driver, "driver", "encoding/json", "JSON tokenizer: encoding/json or go-json")
	pf.StringVar(&a.duplicates, "duplicates", "ignore", "Duplicate object keys: ignore, warn or error")
	pf.IntVar(&a.maxDepth, "max-depth", 0, "Maximum nesting depth (0 = unlimited)")

	root.AddCommand(
		newFmtCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newRemoveCmd(a),
		newMergeCmd(a),
		newYAMLCmd(a),
		newDupsCmd(a),
		newSchemaCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) parseOpt() (jsondoc.ParseOpt, error) {
	opt := jsondoc.ParseOpt{MaxDepth: a.maxDepth, Logger: a.logger}
	switch a.duplicates {
	case "", "ignore":
		opt.OnDuplicateKey = jsondoc.Ignore
	case "warn":
		opt.OnDuplicateKey = jsondoc.Warn
	case "error":
		opt.OnDuplicateKey = jsondoc.Error
	default:
		return opt, fmt.Errorf("unknown --duplicates value %q", a.duplicates)
	}
	return opt, nil
}

// load parses the named file, or stdin for "-".
func (a *app) load(cmd *cobra.Command, name string) (*jsondoc.Document, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	opt, err := a.parseOpt()
	if err != nil {
		return nil, err
	}
	d, err := jsondoc.Parse(data, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(name), err)
	}
	a.logger.Debug("jsondoc: loaded", "input", displayName(name), "bytes", len(data), "root", d.Type())
	return d, nil
}

func (a *app) write(cmd *cobra.Command, d *jsondoc.Document, indent int) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), d.ToString(indent))
	return err
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// inputArg returns args[i], defaulting to stdin.
func inputArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "-"
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
