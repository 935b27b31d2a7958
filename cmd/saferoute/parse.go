package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saferoute-dev/saferoute/pkg/routepath"
	"github.com/saferoute-dev/saferoute/pkg/routeurl"
	"github.com/saferoute-dev/saferoute/pkg/segment"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <pattern> <path>",
		Short: "Decode a concrete path against a route pattern",
		Long: `Decode a concrete path (optionally with a query string) against a
route pattern and print the typed parameters as JSON.

Examples:

  saferoute parse /product/[productID] /product/23
  saferoute parse /dashboard/[...options] /dashboard/deployments/2
  saferoute parse / '/?bar=true&userInfo=%7B%22name%22%3A%22bob%22%7D'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, target := args[0], args[1]

			rawPath, rawQuery := routepath.SplitPathAndQuery(target)
			raw, err := matchPattern(pattern, rawPath)
			if err != nil {
				return err
			}

			out := map[string]any{
				"routeParams":  routeurl.ParseRouteParams(pattern, raw),
				"searchParams": routeurl.ParseQueryString(rawQuery),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	return cmd
}

// matchPattern aligns a concrete path with a pattern and collects the raw,
// still percent-encoded parameter values.
func matchPattern(pattern, path string) (map[string]any, error) {
	segs := segment.ClassifyPattern(pattern)
	parts := segment.Split(path)
	raw := make(map[string]any)

	i := 0
	for _, sg := range segs {
		switch sg.Kind {
		case segment.Static:
			if i >= len(parts) || parts[i] != sg.Name {
				return nil, fmt.Errorf("path %q does not match pattern %q at segment %q", path, pattern, sg.Name)
			}
			i++

		case segment.Dynamic:
			if i >= len(parts) {
				return nil, fmt.Errorf("path %q is missing a value for [%s]", path, sg.Name)
			}
			raw[sg.Name] = parts[i]
			i++

		case segment.CatchAll:
			if i >= len(parts) {
				return nil, fmt.Errorf("path %q is missing values for [...%s]", path, sg.Name)
			}
			raw[sg.Name] = parts[i:]
			return raw, nil

		case segment.OptionalCatchAll:
			if i < len(parts) {
				raw[sg.Name] = parts[i:]
			}
			return raw, nil
		}
	}

	if i != len(parts) {
		return nil, fmt.Errorf("path %q has %d extra segment(s) beyond pattern %q", path, len(parts)-i, pattern)
	}
	return raw, nil
}
