package cmd

import (
	"github.com/GregDucq/PanGenomePipeline/internal/pangenome"
	"github.com/spf13/cobra"
)

// checkCmd is for validating a run's inputs before spending cluster time
var checkCmd = &cobra.Command{
	Use:                        "check",
	Short:                      "Validate the itinerary and genome files and print the clustering plan",
	Run:                        pangenome.CheckCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Parse the itinerary and genome order files, warn about genomes with no
output column or missing input files, and print each step with its level
in the hierarchy. Nothing is executed.`,
}

// set flags
func init() {
	checkCmd.Flags().StringP("dir", "d", "", "working directory with the input and step files")
	checkCmd.Flags().StringP("itinerary", "i", "", "hierarchy definition file (default \"<dir>/itinerary.txt\")")
	checkCmd.Flags().StringP("genomes", "g", "", "genome order file (default \"<dir>/genomes.list\")")

	rootCmd.AddCommand(checkCmd)
}
