package pangenome

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/GregDucq/PanGenomePipeline/config"
	"github.com/spf13/cobra"
)

// CheckCmd takes a cobra command (with its flags) and runs Check.
func CheckCmd(cmd *cobra.Command, args []string) {
	Check(parseCmdFlags(cmd, args))
}

// Check validates the itinerary and genome order files and prints the
// clustering plan, without running anything. Problems that would fail a
// run later, a clustered genome missing from the order file or an input
// file that does not exist yet, come out as warnings.
func Check(flags *Flags, conf *config.Config) {
	it, err := parseItinerary(flags.itinerary)
	if err != nil {
		stderr.Fatalln(err)
	}

	reg, err := readGenomeOrder(flags.genomes)
	if err != nil {
		stderr.Fatalln(err)
	}

	used := make(map[string]bool)
	for _, g := range it.genomes() {
		used[g] = true
		if _, ok := reg.column(g); !ok {
			stderr.Printf("warning: genome %s is clustered but missing from %s, its loci have no output column\n", g, flags.genomes)
		}
	}
	for _, g := range reg.order {
		if !used[g] {
			stderr.Printf("warning: genome %s is in %s but no step clusters it\n", g, flags.genomes)
		}
	}

	for _, err := range verifyGenomeFiles(it, flags.dir, conf) {
		stderr.Printf("warning: %v\n", err)
	}

	levels := it.levels()
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "step\tlevel\tparts\t\n")
	for _, step := range it.Steps {
		fmt.Fprintf(writer, "%s\t%d\t%s\t\n", step.Name, levels[step.Name], strings.Join(step.Parts, ", "))
	}
	writer.Flush()
}
