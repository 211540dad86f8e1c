package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/s7db/internal/config"
	"github.com/matzehuels/s7db/pkg/errors"
	pio "github.com/matzehuels/s7db/pkg/io"
	"github.com/matzehuels/s7db/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string // output file, only valid with a single definition
	outputDir string // directory for relative output paths
	toStdout  bool   // print the source instead of writing it
	noCache   bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <definition>...",
		Short: "Generate S7 data-block sources from definition files",
		Long: `Generate S7 data-block sources from JSON, YAML or TOML definition files.

Each definition is written to its "output" field, or to <name>.db when unset.
Relative paths are resolved against --output-dir (default: output.dir from the
configuration).`,
		Example: `  s7db generate plant.yaml
  s7db generate plant.yaml -o build/plant.db
  s7db generate defs/*.toml --output-dir build
  s7db generate plant.json --stdout`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--output can only be used with a single definition")
			}
			if opts.output != "" && opts.toStdout {
				return errors.New(errors.ErrCodeInvalidInput, "--output and --stdout are mutually exclusive")
			}
			if !cmd.Flags().Changed("output-dir") {
				opts.outputDir = c.settings().Output.Dir
			}
			return c.runGenerate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single definition only)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for relative output paths")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "print the source to stdout instead of writing a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the source cache")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, paths []string, opts generateOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	for _, path := range paths {
		doc, err := pio.ImportFile(path)
		if err != nil {
			return err
		}
		applyDefaults(doc, c.settings().Defaults)

		res, err := runner.Generate(ctx, pipeline.Options{
			Document:  doc,
			Write:     !opts.toStdout,
			Output:    opts.output,
			OutputDir: opts.outputDir,
			NoCache:   opts.noCache,
		})
		if err != nil {
			return errors.New(errors.GetCode(err), "%s: %s", path, errors.UserMessage(err))
		}

		if opts.toStdout {
			fmt.Fprint(stdout, res.Source)
			continue
		}
		printSuccess("Generated %s", StyleValue.Render(res.Block.Name()))
		printFile(res.Path)
		printStats(res.Stats.Variables, pio.Summarize(res.Block).Statements, res.Stats.Bytes, res.CacheHit)
	}

	if !opts.toStdout {
		prog.done(fmt.Sprintf("Generated %d block(s)", len(paths)))
	}
	return nil
}

// applyDefaults fills block attributes the definition leaves unset.
func applyDefaults(doc *pio.Document, d config.DefaultsConfig) {
	doc.ApplyDefaults(d.OptimizedAccess, d.OPCAccess)
}
