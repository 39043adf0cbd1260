package pangenome

import (
	"path/filepath"
	"testing"
)

func Test_NewFlags(t *testing.T) {
	dir := t.TempDir()

	flags, conf := NewFlags(dir, "", "")
	if conf == nil {
		t.Fatal("NewFlags() returned no config")
	}
	if flags.dir != dir {
		t.Errorf("dir = %s, want %s", flags.dir, dir)
	}
	if want := filepath.Join(dir, "itinerary.txt"); flags.itinerary != want {
		t.Errorf("itinerary = %s, want default %s", flags.itinerary, want)
	}
	if want := filepath.Join(dir, "genomes.list"); flags.genomes != want {
		t.Errorf("genomes = %s, want default %s", flags.genomes, want)
	}

	flags, _ = NewFlags(dir, "/tmp/plan.txt", "/tmp/order.list")
	if flags.itinerary != "/tmp/plan.txt" || flags.genomes != "/tmp/order.list" {
		t.Errorf("explicit paths were not kept: %s, %s", flags.itinerary, flags.genomes)
	}
}
