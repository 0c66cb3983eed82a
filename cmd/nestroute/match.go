package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/pkg/router"
)

func matchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <path>...",
		Short: "Match paths against the manifest",
		Long: `Match one or more paths and print the matched route, its parameters
and the chain of views from the outermost layout to the leaf.

Examples:
  nestroute match /users/42
  nestroute match "/docs/guide/intro?lang=en" /missing`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			_, routes, err := a.tree()
			if err != nil {
				return err
			}
			r := a.newRouter(routes, nil)

			out := cmd.OutOrStdout()
			misses := 0
			for _, path := range args {
				res, err := r.Match(context.Background(), path)
				switch {
				case stderrors.Is(err, router.ErrNotFound):
					misses++
					warn(out, "%s: no route matches", path)
					continue
				case err != nil:
					return fmt.Errorf("%s: %w", path, err)
				}

				success(out, "%s → %s", path, cyan(res.Pattern))
				info(out, "id      %d", res.ID)
				if len(res.Params) > 0 {
					parts := make([]string, len(res.Params))
					for i, p := range res.Params {
						parts[i] = p.Key + "=" + p.Value
					}
					info(out, "params  %s", strings.Join(parts, " "))
				}
				if res.Query != "" {
					info(out, "query   %s", res.Query)
				}
				info(out, "views   %s", strings.Join(res.Views, " › "))
				if leaf := res.Leaf(); leaf.Title != "" {
					info(out, "title   %s", leaf.Title)
				}
			}

			if misses > 0 {
				return fmt.Errorf("%d of %d paths did not match", misses, len(args))
			}
			return nil
		},
	}

	return cmd
}
