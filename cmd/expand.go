package cmd

import (
	"github.com/GregDucq/PanGenomePipeline/internal/pangenome"
	"github.com/spf13/cobra"
)

// expandCmd is for flattening finished step results without clustering
var expandCmd = &cobra.Command{
	Use:                        "expand",
	Short:                      "Expand the final step's results back to per-genome loci",
	Run:                        pangenome.ExpandCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Rewrite the final step's match table, centroid FASTA, and frameshift
report with every pseudo-locus replaced by the real loci it stands for,
as if a single flat clustering run had produced them.

Every step of the itinerary must already have its result files on disk;
expand reads them and writes ".expanded" siblings, never modifying the
originals.`,
}

// set flags
func init() {
	expandCmd.Flags().StringP("dir", "d", "", "working directory with the input and step files")
	expandCmd.Flags().StringP("itinerary", "i", "", "hierarchy definition file (default \"<dir>/itinerary.txt\")")
	expandCmd.Flags().StringP("genomes", "g", "", "genome order file (default \"<dir>/genomes.list\")")

	rootCmd.AddCommand(expandCmd)
}
