package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// ProcessCmd returns the process command
func ProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process pending knowledge documents",
		Long:  "Scan the work queue of unprocessed knowledge records and run each through the ingestion pipeline, or process a single record with --knowledge-id",
		RunE:  runProcess,
	}

	cmd.Flags().String("knowledge-id", "", "Process only the knowledge record with this id")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	knowledgeID, _ := cmd.Flags().GetString("knowledge-id")
	if knowledgeID != "" {
		record, err := p.knowledgeRepo.GetByID(ctx, knowledgeID)
		if err != nil {
			return fmt.Errorf("failed to load knowledge record: %w", err)
		}
		return p.processor.ProcessKnowledge(ctx, record.ProjectID, record.ID, record.FilePath, record.FileName)
	}

	if err := p.processor.ProcessAllUnprocessed(ctx); err != nil {
		return err
	}

	log.Println("queue drained")
	return nil
}
