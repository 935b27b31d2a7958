package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saferoute-dev/saferoute/pkg/routepath"
	"github.com/saferoute-dev/saferoute/pkg/routeurl"
)

func buildCmd() *cobra.Command {
	var (
		paramsJSON string
		queryJSON  string
	)

	cmd := &cobra.Command{
		Use:   "build <pattern>",
		Short: "Build a concrete path from a route pattern",
		Long: `Build a concrete path from a route pattern and JSON parameter objects.

Examples:

  saferoute build /product/[productID] --params '{"productID": 23}'
  saferoute build /dashboard/[...options] --params '{"options": ["deployments", 2]}'
  saferoute build / --query '{"bar": true}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			if _, err := routepath.Canonicalize(pattern); err != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}

			routeParams, err := decodeJSONObject(paramsJSON)
			if err != nil {
				return fmt.Errorf("--params: %w", err)
			}
			searchParams, err := decodeJSONObject(queryJSON)
			if err != nil {
				return fmt.Errorf("--query: %w", err)
			}

			path, err := routeurl.BuildPathMap(pattern, routeParams, searchParams)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&paramsJSON, "params", "p", "", "Route parameters as a JSON object")
	cmd.Flags().StringVarP(&queryJSON, "query", "q", "", "Search parameters as a JSON object")

	return cmd
}

// decodeJSONObject parses a JSON object flag value; empty input is nil.
func decodeJSONObject(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return obj, nil
}
