/**************************************************************************************************
** Main entry point for the shootdesk CLI. It imports photo shoots from disk, filters them, builds
** search queries and sends them to the search backend.
**************************************************************************************************/

package main

import (
	"os"

	"github.com/spf13/cobra"
)

/**************************************************************************************************
** CreateRootCommand builds the command tree: import, search, upload and ask, sharing the
** persistent configuration flags.
**************************************************************************************************/
func CreateRootCommand() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "shootdesk",
		Short: "Shootdesk CLI",
		Long:  "A local photo library organized in shoots, with image, text, face and tag search.",
	}

	var importCmd = &cobra.Command{
		Use:   "import <path>...",
		Short: "Import photos as shoots",
		Long:  "Import each path (file or directory) as its own shoot, keeping only images within the import bounds.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runImport,
	}

	var searchCmd = &cobra.Command{
		Use:   "search [path]...",
		Short: "Search the imported shoots",
		Long:  "Import the given paths as shoots, build a query for the chosen mode and send it to the search backend.",
		Run:   runSearch,
	}

	var uploadCmd = &cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload photos to the backend",
		Long:  "Import the given paths and upload every accepted photo to the backend.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runUpload,
	}

	var askCmd = &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant",
		Long:  "Send one message, with optional image attachments, to the assistant and print the conversation.",
		Run:   runAsk,
	}

	bindFlags(rootCmd)
	bindSearchFlags(searchCmd)
	bindAskFlags(askCmd)

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	return rootCmd
}

/**************************************************************************************************
** bindFlags registers the persistent configuration flags on the root command.
**************************************************************************************************/
func bindFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Search backend URL (or set API_URL env var)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", true, "Answer with stubs instead of calling the backend (or set DRY_RUN=false)")
	rootCmd.PersistentFlags().IntVar(&maxWidth, "max-width", 0, "Maximum width of imported images in pixels (or set MAX_WIDTH env var)")
	rootCmd.PersistentFlags().IntVar(&maxHeight, "max-height", 0, "Maximum height of imported images in pixels (or set MAX_HEIGHT env var)")
	rootCmd.PersistentFlags().IntVar(&probeConcurrency, "probe-concurrency", 0, "Number of images decoded in parallel (or set PROBE_CONCURRENCY env var)")
	rootCmd.PersistentFlags().IntVar(&httpTimeout, "http-timeout", 0, "Backend request timeout in seconds (or set HTTP_TIMEOUT env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (or set LOG_LEVEL env var)")
}

/**************************************************************************************************
** Application entry point.
**************************************************************************************************/
func main() {
	if err := CreateRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
