package pangenome

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GregDucq/PanGenomePipeline/config"
	"github.com/spf13/cobra"
)

// RunCmd takes a cobra command (with its flags) and runs Run.
func RunCmd(cmd *cobra.Command, args []string) {
	Run(parseCmdFlags(cmd, args))
}

// Run executes the whole pipeline: every itinerary step in order, each
// one building its combined input, calling the external clustering tool,
// and synthesizing its pseudo-genome, then the expansion of the final
// step's results back to real loci. Steps whose results are already on
// disk are skipped, so an interrupted pipeline resumes where it stopped.
func Run(flags *Flags, conf *config.Config) {
	start := time.Now()

	if err := run(flags, conf); err != nil {
		stderr.Fatalln(err)
	}

	if conf.Verbose {
		fmt.Printf("%s\n\n", time.Since(start))
	}
}

func run(flags *Flags, conf *config.Config) error {
	it, err := parseItinerary(flags.itinerary)
	if err != nil {
		return err
	}

	// every raw genome needs its FASTA and attribute file before any
	// clustering is worth starting
	if missing := verifyGenomeFiles(it, flags.dir, conf); len(missing) > 0 {
		for _, err := range missing {
			stderr.Println(err)
		}
		return fmt.Errorf("%d input files missing under %s", len(missing), flags.dir)
	}

	// built before the step loop: a bad genome order file or attribute
	// record has to abort the run before any cluster time is spent. The
	// expander reads step results lazily, so none are needed yet
	e, err := newExpander(flags, conf)
	if err != nil {
		return err
	}

	for _, step := range it.Steps {
		if err := runStep(step, flags.dir, it, conf); err != nil {
			return err
		}
	}

	return e.expandResults()
}

// runStep clusters one step. The pseudo-genome is rewritten even when
// the clustering itself is skipped: it is derived entirely from the
// step's centroid file, and a run that died between clustering and
// synthesis would otherwise leave the step half-usable.
func runStep(step *Step, work string, it *Itinerary, conf *config.Config) error {
	stepDir := filepath.Join(work, conf.StepsDir, step.Name)
	if err := os.MkdirAll(stepDir, 0755); err != nil {
		return fmt.Errorf("failed to create step directory %s: %w", stepDir, err)
	}

	c := newClusterExec(step, stepDir, conf)
	if c.done() {
		if conf.Verbose {
			fmt.Printf("step %s already clustered, skipping\n", step.Name)
		}
		return pseudoGenome(step, stepDir, conf)
	}

	if conf.Verbose {
		fmt.Printf("clustering %s (%s)\n", step.Name, strings.Join(step.Parts, ", "))
	}

	if err := c.build(work, it, conf); err != nil {
		return err
	}
	if err := c.run(); err != nil {
		return err
	}
	if err := c.verify(); err != nil {
		return err
	}

	return pseudoGenome(step, stepDir, conf)
}
