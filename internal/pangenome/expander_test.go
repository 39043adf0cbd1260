package pangenome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// writeFiles lays a map of relative path to content out under dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// testWorkspace writes a finished two level, four genome run: A and B
// cluster in branch L1B1, C and D in L1B2, and L2B1 merges the branches'
// first clusters while keeping their second clusters apart. Every step's
// results are already on disk, so tests can exercise lookup, resolution,
// and expansion without a clustering tool.
func testWorkspace(t *testing.T) (*Flags, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"itinerary.txt": "L1B1(A,B)\nL1B2(C,D)\nL2B1(L1B1,L1B2)\n",
		"genomes.list":  "A\nB\nC\nD\n",

		"fasta/A.fasta": ">a_locus1\nATGAAA\n>a_locus2\nATGCCC\n",
		"fasta/B.fasta": ">b_locus1\nATGAAA\n",
		"fasta/C.fasta": ">c_locus1\nATGGGG\n>c_locus2\nATGTTT\n",
		"fasta/D.fasta": ">d_locus1\nATGGGG\n",

		"att/A.att": "ctgA\ta_locus1\t1\t180\thypothetical protein\tA\n" +
			"ctgA\ta_locus2\t200\t400\tDNA polymerase III\tA\n",
		"att/B.att": "ctgB\tb_locus1\t1\t150\thypothetical protein\tB\n",
		"att/C.att": "ctgC\tc_locus1\t10\t200\trecA\tC\n" +
			"ctgC\tc_locus2\t300\t500\tgyrB\tC\n",
		"att/D.att": "ctgD\td_locus1\t5\t88\trecA\tD\n",

		"steps/L1B1/matchtable.txt": "1\ta_locus1\tb_locus1\n2\ta_locus2\t----------\n",
		"steps/L1B1/centroids.fasta": ">centroid_1 a_locus1 hypothetical protein\nATGAAA\n" +
			">centroid_2 a_locus2 DNA polymerase III\nATGCCC\n",

		"steps/L1B2/matchtable.txt": "1\tc_locus1\td_locus1\n2\tc_locus2\t----------\n",
		"steps/L1B2/centroids.fasta": ">centroid_1 c_locus1 recA\nATGGGG\n" +
			">centroid_2 c_locus2 gyrB\nATGTTT\n",

		"steps/L2B1/matchtable.txt": "1\tL1B1_1\tL1B2_1\n2\tL1B1_2\t----------\n3\t----------\tL1B2_2\n",
		"steps/L2B1/centroids.fasta": ">centroid_1 L1B1_1 hypothetical protein\nATGAAA\n" +
			">centroid_2 L1B1_2 DNA polymerase III\nATGCCC\n" +
			">centroid_3 L1B2_2 gyrB\nATGTTT\n",
		"steps/L2B1/frameshifts.txt": "L1B1_2\tL1B2_2\nb_locus1\tok\n",
	})

	return NewFlags(dir, "", "")
}

// testExpander builds an expander over the standard test workspace.
func testExpander(t *testing.T) *expander {
	t.Helper()

	e, err := newExpander(testWorkspace(t))
	if err != nil {
		t.Fatalf("failed to build expander: %v", err)
	}
	return e
}

// testLoopExpander builds an expander over a one step hierarchy whose
// result files reference the step itself, which a well formed run can
// never produce.
func testLoopExpander(t *testing.T, match, centroids string) *expander {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"itinerary.txt":              "L1B1(A)\n",
		"genomes.list":               "A\n",
		"att/A.att":                  "ctgA\ta_locus1\t1\t9\thypothetical protein\tA\n",
		"steps/L1B1/matchtable.txt":  match,
		"steps/L1B1/centroids.fasta": centroids,
	})

	e, err := newExpander(NewFlags(dir, "", ""))
	if err != nil {
		t.Fatalf("failed to build expander: %v", err)
	}
	return e
}

func Test_newExpander(t *testing.T) {
	e := testExpander(t)

	if got := e.it.depth(); got != 3 {
		t.Errorf("itinerary depth = %d, want 3", got)
	}
	if got := e.reg.size(); got != 4 {
		t.Errorf("registry size = %d, want 4", got)
	}

	wantOwners := map[string]string{
		"a_locus1": "A", "a_locus2": "A",
		"b_locus1": "B",
		"c_locus1": "C", "c_locus2": "C",
		"d_locus1": "D",
	}
	for id, genome := range wantOwners {
		if got := e.index[id]; got != genome {
			t.Errorf("index[%s] = %s, want %s", id, got, genome)
		}
	}
	if len(e.index) != len(wantOwners) {
		t.Errorf("index holds %d loci, want %d", len(e.index), len(wantOwners))
	}
}

func Test_newExpander_badInputs(t *testing.T) {
	flags, conf := testWorkspace(t)

	// conflicting owners for the same locus across attribute files
	att := filepath.Join(flags.dir, conf.AttDir, "D.att")
	if err := os.WriteFile(att, []byte("ctgD\tc_locus1\t5\t88\trecA\tD\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := newExpander(flags, conf); err == nil {
		t.Error("newExpander() expected an error for a locus claimed by two genomes")
	}
}
