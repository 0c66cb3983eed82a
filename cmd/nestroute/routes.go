package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/pkg/registry"
)

func routesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List every route the manifest generates",
		Long: `List every route the manifest generates, in match order.

Examples:
  nestroute routes
  nestroute routes --json
  nestroute routes -m routes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			m, routes, err := a.tree()
			if err != nil {
				return err
			}

			snap := registry.FromRoutes(a.cfg.Name, routes)
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := snap.Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			names := reverse(m.Names())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, r := range snap.Routes {
				fmt.Fprintf(tw, "  %s\t%s\n", cyan(r.Pattern), faint(strings.Join(names[r.Pattern], ", ")))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			info(out, "%d routes", len(snap.Routes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route table as JSON")

	return cmd
}

// reverse maps each pattern to the entry names that resolve to it.
func reverse(names map[string]string) map[string][]string {
	out := make(map[string][]string, len(names))
	for name, pattern := range names {
		out[pattern] = append(out[pattern], name)
	}
	for _, list := range out {
		slices.Sort(list)
	}
	return out
}
