package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/structa-ai/structa/internal/traindata"
)

// TrainDataCmd returns the traindata command
func TrainDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traindata",
		Short: "Convert Word document tables into fine-tuning data",
		Long:  "Extract observation rows from the tables of a Word document and write them as chat-style JSONL fine-tuning examples",
		RunE:  runTrainData,
	}

	cmd.Flags().StringP("input", "i", "", "Path to the input .docx file")
	cmd.Flags().StringP("output", "o", "", "Path to the output .jsonl file")
	cmd.Flags().String("tag", traindata.DefaultTag, "Tag written into the user prompt of each example")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runTrainData(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	tag, _ := cmd.Flags().GetString("tag")

	count, err := traindata.Convert(input, output, tag)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d training examples to %s\n", count, output)
	return nil
}
