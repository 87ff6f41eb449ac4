package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
	"github.com/reoring/jsondoc/i18n"
	"github.com/reoring/jsondoc/jsonschema"
)

var errInvalid = errors.New("document does not match schema")

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Infer or check JSON Schemas",
	}
	cmd.AddCommand(newSchemaGenCmd(a), newSchemaValidateCmd(a))
	return cmd
}

func newSchemaGenCmd(a *app) *cobra.Command {
	var (
		opts   jsonschema.Options
		indent int
	)
	cmd := &cobra.Command{
		Use:   "gen <sample>...",
		Short: "Infer a schema from sample documents",
		Long: `Infer a JSON Schema describing every sample. A property is required only
when it appears in every sample object at that position.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples := make([]*jsondoc.Document, 0, len(args))
			for _, name := range args {
				d, err := a.load(cmd, name)
				if err != nil {
					return err
				}
				samples = append(samples, d)
			}
			opts.Logger = a.logger
			schema, err := jsonschema.Generate(opts, samples...)
			if err != nil {
				return err
			}
			return a.write(cmd, schema, indent)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.InferFormats, "formats", false, "Infer string formats (date-time, email, uuid, ...)")
	f.BoolVar(&opts.InferConstraints, "constraints", false, "Infer bounds and small enums")
	f.IntVar(&opts.MaxEnumValues, "max-enum", 0, "Largest inferred enum (0 = default, negative disables)")
	f.StringVar(&opts.Title, "title", "", "Schema title")
	f.IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level")
	return cmd
}

func newSchemaValidateCmd(a *app) *cobra.Command {
	var (
		failFast  bool
		maxIssues int
		lang      string
	)
	cmd := &cobra.Command{
		Use:   "validate <schema> [file]",
		Short: "Check a document against a schema",
		Long:  `Check a document against a schema and list every issue. Exits non-zero when the document does not match.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := a.load(cmd, inputArg(args, 1))
			if err != nil {
				return err
			}
			v := jsonschema.NewValidator(schema,
				jsonschema.WithFailFast(failFast),
				jsonschema.WithMaxIssues(maxIssues),
				jsonschema.WithTranslator(i18n.Dictionary(lang)),
				jsonschema.WithLogger(a.logger),
			)
			res := v.Validate(doc)
			out := cmd.OutOrStdout()
			if res.Valid {
				_, err = fmt.Fprintln(out, "valid")
				return err
			}
			for _, iss := range res.Issues {
				line := iss.String()
				if iss.Hint != "" {
					line += " (" + iss.Hint + ")"
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return fmt.Errorf("%w: %d issue(s)", errInvalid, len(res.Issues))
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first issue")
	cmd.Flags().IntVar(&maxIssues, "max-issues", 0, "Stop after this many issues (0 = no limit)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Message language: en or ja")
	return cmd
}
