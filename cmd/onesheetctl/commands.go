package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/document"
	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

type rootOptions struct {
	catalogPath string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "onesheetctl",
		Short:         "Render OneSheet prompts and parse model output",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "YAML template catalog (default: built-in templates)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log extraction details to stderr")

	root.AddCommand(
		newTemplatesCmd(opts),
		newRenderCmd(opts),
		newParseCmd(opts),
		newDocumentCmd(opts),
	)
	return root
}

func (o *rootOptions) catalog() (prompt.Catalog, error) {
	if o.catalogPath == "" {
		return prompt.DefaultCatalog(), nil
	}
	return prompt.LoadCatalog(o.catalogPath)
}

// extractor builds an LLM-free extractor that logs to stderr.
func (o *rootOptions) extractor(cmd *cobra.Command) (*extractor.Extractor, error) {
	catalog, err := o.catalog()
	if err != nil {
		return nil, err
	}
	level := log.WarnLevel
	if o.verbose {
		level = log.DebugLevel
	}
	logger := slog.New(log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Level: level}))
	return extractor.New(nil, prompt.NewEngine(catalog), logger, extractor.Options{}), nil
}

func newTemplatesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List template kinds and their placeholders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, kind := range catalog.Kinds() {
				t, _ := catalog.Lookup(kind)
				fmt.Fprintf(out, "%-18s %s\n", kind, strings.Join(t.Placeholders, ", "))
			}
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var sets []string
	var withSystem bool
	cmd := &cobra.Command{
		Use:   "render KIND",
		Short: "Fill a template with placeholder values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			engine := prompt.NewEngine(catalog)
			kind := prompt.ParseKind(args[0])

			body, err := engine.Render(kind, values)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if withSystem {
				system, err := engine.System(kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n\n", system)
			}
			fmt.Fprintln(out, body)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().BoolVar(&withSystem, "system", false, "print the system prompt first")
	return cmd
}

// parseSets turns name=value pairs into a value map. Later pairs win.
func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", s)
		}
		values[strings.TrimSpace(name)] = value
	}
	return values, nil
}

type parseOutput struct {
	assembler.Result
	Count    int    `json:"count"`
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse KIND [FILE]",
		Short: "Parse a raw completion into records and print JSON",
		Long:  "Parse a raw completion read from FILE, or from stdin when FILE is omitted or \"-\".",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extractor(cmd)
			if err != nil {
				return err
			}
			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			raw, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			result, err := ext.Parse(prompt.ParseKind(args[0]), raw)
			if err != nil {
				return err
			}
			out := parseOutput{Result: result, Count: result.Count(), Degraded: result.Degraded()}
			if out.Degraded {
				out.Message = document.EmptyMessage
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func newDocumentCmd(opts *rootOptions) *cobra.Command {
	var title string
	var html bool
	cmd := &cobra.Command{
		Use:   "document KIND=FILE...",
		Short: "Assemble parsed completions into a OneSheet document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extractor(cmd)
			if err != nil {
				return err
			}

			results := make([]assembler.Result, 0, len(args))
			for _, arg := range args {
				kind, path, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid section %q: want KIND=FILE", arg)
				}
				raw, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				result, err := ext.Parse(prompt.ParseKind(kind), raw)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			md := document.Build(title, results)
			if !html {
				_, err := io.WriteString(cmd.OutOrStdout(), md)
				return err
			}
			rendered, err := document.HTML(md)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title (default \"OneSheet\")")
	cmd.Flags().BoolVar(&html, "html", false, "render HTML instead of Markdown")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
