package cmd

import (
	"github.com/GregDucq/PanGenomePipeline/internal/pangenome"
	"github.com/spf13/cobra"
)

// runCmd is for executing the whole clustering pipeline
var runCmd = &cobra.Command{
	Use:                        "run",
	Short:                      "Run every clustering step of the itinerary, then expand the results",
	Run:                        pangenome.RunCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Run the whole pipeline: cluster each step of the itinerary with the external
clustering tool, feed each level's clusters into the next level as
pseudo-genomes, and afterwards expand the final step's results back to
per-genome loci.

Steps whose result files already exist are skipped, so an interrupted run
can be restarted with the same command.`,
}

// set flags
func init() {
	runCmd.Flags().StringP("dir", "d", "", "working directory with the input and step files")
	runCmd.Flags().StringP("itinerary", "i", "", "hierarchy definition file (default \"<dir>/itinerary.txt\")")
	runCmd.Flags().StringP("genomes", "g", "", "genome order file (default \"<dir>/genomes.list\")")

	rootCmd.AddCommand(runCmd)
}
