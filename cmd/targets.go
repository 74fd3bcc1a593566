package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/targets"
)

// targetsCmd lists the registered targets with their resolved files.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List marketplace targets and the files they use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTargets(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

// listTargets prints one line per configured target.
func listTargets(out io.Writer, c *config.Config) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tSOURCE\tSCHEMA\tOUTPUT")

	for _, name := range c.TargetNames() {
		tc := c.Targets[name]

		schema := "built in"
		target, err := targets.Build(name, tc)
		switch {
		case err != nil:
			schema = "unknown target"
		case !target.HasBuiltinSchema():
			schema = tc.TemplatePath
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s (%s)\n",
			name,
			c.SourcePathFor(name),
			schema,
			tc.OutputPath,
			strings.ToUpper(tc.OutputFormat))
	}

	return w.Flush()
}
