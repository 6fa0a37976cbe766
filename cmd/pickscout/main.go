package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pickscout",
		Short: "Find and track sports betting picks posted on social media",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(scrapeCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())
	root.AddCommand(seedCmd())

	return root
}

func scrapeCmd() *cobra.Command {
	var platforms []string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one ingestion pass over all configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(platforms)
		},
	}

	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "specific platforms to scrape (e.g., reddit,rss)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP read API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon: periodic scraping plus the HTTP read API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load mock cappers and picks into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}
