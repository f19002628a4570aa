package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/structa-ai/structa/internal/cli"
	"github.com/structa-ai/structa/internal/cli/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "structa",
		Short: "Structa knowledge ingestion pipeline",
		Long:  "Structa ingests PDF documents from object storage, chunks and embeds their text, and persists the vectors for semantic retrieval. Also bundles a docx-to-JSONL training data converter.",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(commands.ProcessCmd())
	rootCmd.AddCommand(commands.ServeCmd())
	rootCmd.AddCommand(commands.TrainDataCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "process")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
