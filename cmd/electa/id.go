package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/electa-dev/electa/pkg/catalog"
)

func idCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <electorate> <name...>",
		Short: "Print the candidate id used in profile links",
		Long: `Print the id of a candidate as it appears in /profile?candidate=... links.

The id is derived from the electorate and the candidate's name, so it
can be computed before the candidate is added to candidates.json.`,
		Example: `  electa id Warringah Jane Smith
  electa id "North Sydney" "Sam Lee"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			fmt.Fprintln(cmd.OutOrStdout(), catalog.CandidateID(args[0], name))
			return nil
		},
	}
}
