package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the selectable model catalog",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROVIDER")
	for _, m := range llm.Models() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.DisplayName, m.Family)
	}
	return w.Flush()
}
