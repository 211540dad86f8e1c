package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/s7db/internal/config"
	"github.com/matzehuels/s7db/pkg/datablock"
	pio "github.com/matzehuels/s7db/pkg/io"
	"github.com/matzehuels/s7db/pkg/pipeline"
)

type exampleOpts struct {
	output     string
	definition string // also write the block's JSON definition here
	toStdout   bool
}

// exampleCommand creates the example command, which builds the reference
// demo block through the construction API.
func (c *CLI) exampleCommand() *cobra.Command {
	var opts exampleOpts

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write the demo data block",
		Long: `Build the demo data block "test_db" in code and write its source.

Use --definition to also export the equivalent JSON definition, which is a
convenient starting point for your own blocks.`,
		Example: `  s7db example
  s7db example -o demo.db --definition demo.json
  s7db example --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExample(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: test_db.db)")
	cmd.Flags().StringVar(&opts.definition, "definition", "", "also write the JSON definition to this file")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "print the source to stdout instead of writing a file")

	return cmd
}

func (c *CLI) runExample(ctx context.Context, opts exampleOpts) error {
	b, err := demoBlock(c.settings().Defaults)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Generate(ctx, pipeline.Options{
		Block:     b,
		Write:     !opts.toStdout,
		Output:    opts.output,
		OutputDir: c.settings().Output.Dir,
	})
	if err != nil {
		return err
	}

	if opts.definition != "" {
		if err := pio.ExportJSON(b, opts.definition); err != nil {
			return err
		}
	}

	if opts.toStdout {
		fmt.Fprint(stdout, res.Source)
		return nil
	}
	printSuccess("Generated %s", StyleValue.Render(b.Name()))
	printFile(res.Path)
	if opts.definition != "" {
		printFile(opts.definition)
	}
	printStats(res.Stats.Variables, pio.Summarize(b).Statements, res.Stats.Bytes, res.CacheHit)
	if opts.definition != "" {
		printNewline()
		printNextStep("Inspect it", "s7db inspect "+opts.definition)
	}
	return nil
}

// demoBlock builds the reference demo block "test_db".
func demoBlock(d config.DefaultsConfig) (*datablock.Block, error) {
	var opts []datablock.Option
	if d.OptimizedAccess != nil {
		opts = append(opts, datablock.WithOptimizedAccess(*d.OptimizedAccess))
	}
	if d.OPCAccess != nil {
		opts = append(opts, datablock.WithOPCAccess(*d.OPCAccess))
	}
	db := datablock.New("test_db", opts...)

	dints, err := datablock.NewArray("example_array_Dint", datablock.KindDInt,
		datablock.WithValues([]int{1, 2, 3, 4, 5, 6, 7, 8}))
	if err != nil {
		return nil, err
	}
	bools, err := datablock.NewArray("example_array_Bool", datablock.KindBool,
		datablock.WithValues([]bool{true, false, false, true}))
	if err != nil {
		return nil, err
	}
	matrix, err := datablock.NewArray("test_array", datablock.KindDInt,
		datablock.WithValues([][]int{{10, 10}, {2, 2}, {1, 250}}))
	if err != nil {
		return nil, err
	}

	// The string is added twice on purpose: duplicates are kept.
	text := datablock.NewString("text", "example string")
	for _, v := range []datablock.Variable{
		datablock.NewBool("is_active", true),
		datablock.NewDInt("length", 100),
		datablock.NewDInt("with", 200),
		text,
		text,
		dints,
		bools,
		matrix,
	} {
		if err := db.Add(v); err != nil {
			return nil, err
		}
	}
	return db, nil
}
