package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┌─┐┌─┐┌┬┐┌─┐
  ├┤ │  ├┤ │   │ ├─┤
  └─┘┴─┘└─┘└─┘ ┴ ┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "electa",
		Short: "Voter information site",
		Long: `Electa serves candidate information for an election.

Visitors browse the candidates standing in their electorate, save the
ones they intend to vote for, read the blog and buy merchandise. Saved
votes, the cart and cookie consent are kept per browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to electa.json (default: ./electa.json if present)")

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		idCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printBanner prints the Electa ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
