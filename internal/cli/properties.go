package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
)

func (c *CLI) propertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List the style properties and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROPERTY\tKEY\tDEFAULT")
			for _, name := range props.InputProperties {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, props.ShortKey(name), props.DefaultString(name))
			}
			return tw.Flush()
		},
	}
}
