package pangenome

import (
	"log"
	"os"
	"path/filepath"

	"github.com/GregDucq/PanGenomePipeline/config"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra flags like "dir", "itinerary", and "genomes"
// that are shared by the run, expand, and check commands.
type Flags struct {
	// dir is the working directory the pipeline reads inputs from and
	// writes step results under
	dir string

	// itinerary is the path of the file listing each clustering step
	itinerary string

	// genomes is the path of the file fixing output column order
	genomes string
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(dir, itinerary, genomes string) (*Flags, *config.Config) {
	c := config.New()
	p := inputParser{}

	fs := &Flags{
		dir:       p.absDir(dir),
		itinerary: itinerary,
		genomes:   genomes,
	}
	p.fillDefaults(fs)

	return fs, c
}

// parseCmdFlags gathers the working directory, itinerary path, and genome
// order path from a cobra cmd object. Returns Flags and a Config struct
// for pangenome.Run, pangenome.Expand, or pangenome.Check.
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, *config.Config) {
	var err error
	fs := &Flags{} // parsed flags
	p := inputParser{}
	c := config.New()

	if fs.dir, err = cmd.Flags().GetString("dir"); err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}
	fs.dir = p.absDir(fs.dir)

	if fs.itinerary, err = cmd.Flags().GetString("itinerary"); err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	if fs.genomes, err = cmd.Flags().GetString("genomes"); err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	p.fillDefaults(fs)

	return fs, c
}

// absDir resolves the working directory flag against the process's
// current directory, defaulting to the current directory itself when no
// dir was passed. Step directories and outputs all hang off this path,
// so it is pinned down once here.
func (p *inputParser) absDir(dir string) string {
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		stderr.Fatalf("failed to resolve %s: %v", dir, err)
	}
	return abs
}

// fillDefaults points unset file flags at their conventional names under
// the working directory.
func (p *inputParser) fillDefaults(fs *Flags) {
	if fs.itinerary == "" {
		fs.itinerary = filepath.Join(fs.dir, "itinerary.txt")
	}
	if fs.genomes == "" {
		fs.genomes = filepath.Join(fs.dir, "genomes.list")
	}
}
