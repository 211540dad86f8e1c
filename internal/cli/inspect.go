package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/s7db/pkg/io"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <definition>",
		Short: "Show the variables of a definition",
		Long: `Load a definition and show each variable with its declaration and the
number of initialization statements it produces. Variables that cannot be
rendered are listed with their error instead of aborting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pio.ImportFile(args[0])
			if err != nil {
				return err
			}
			applyDefaults(doc, c.settings().Defaults)
			b, err := doc.Build()
			if err != nil {
				return err
			}
			s := pio.Summarize(b)
			if asJSON {
				return writeSummaryJSON(s)
			}
			printSummary(s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(s *pio.Summary) {
	fmt.Fprintln(stdout, StyleTitle.Render(s.Name))
	printKeyValue("Optimized access", strconv.FormatBool(s.OptimizedAccess))
	printKeyValue("OPC UA access", strconv.FormatBool(s.OPCAccess))
	printKeyValue("Read only", strconv.FormatBool(s.ReadOnly))
	printKeyValue("Unlinked", strconv.FormatBool(s.Unlinked))
	printNewline()

	rows := make([][]string, 0, len(s.Variables))
	for _, v := range s.Variables {
		rows = append(rows, []string{
			v.Name,
			v.Type,
			formatDims(v.Dimensions),
			v.Declaration,
			strconv.Itoa(v.Statements),
			v.Error,
		})
	}
	printTable([]string{"Name", "Type", "Dims", "Declaration", "Stmts", "Error"}, rows, 5)

	printDetail("%d variables · %d statements", len(s.Variables), s.Statements)
	if !s.Renderable() {
		printWarning("Block cannot be rendered until the errors above are fixed")
	}
}

func formatDims(dims []int) string {
	if len(dims) == 0 {
		return ""
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "×")
}

func writeSummaryJSON(s *pio.Summary) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
