package pangenome

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func Test_expandResults(t *testing.T) {
	flags, conf := testWorkspace(t)
	e, err := newExpander(flags, conf)
	if err != nil {
		t.Fatalf("failed to build expander: %v", err)
	}

	if err := e.expandResults(); err != nil {
		t.Fatalf("failed to expand results: %v", err)
	}

	finalDir := filepath.Join(flags.dir, conf.StepsDir, "L2B1")
	wants := map[string]string{
		"matchtable.txt.expanded": "1\ta_locus1\tb_locus1\tc_locus1\td_locus1\n" +
			"2\ta_locus2\t----------\t----------\t----------\n" +
			"3\t----------\t----------\tc_locus2\t----------\n",
		"cluster_sizes.txt": "1\t4\n2\t1\n3\t1\n",
		"centroids.fasta.expanded": ">centroid_1 a_locus1 hypothetical protein\nATGAAA\n" +
			">centroid_2 a_locus2 DNA polymerase III\nATGCCC\n" +
			">centroid_3 c_locus2 gyrB\nATGTTT\n",
		"frameshifts.txt.expanded": "a_locus2\tc_locus2\nb_locus1\tok\n",
	}

	for name, want := range wants {
		got, err := os.ReadFile(filepath.Join(finalDir, name))
		if err != nil {
			t.Errorf("failed to read %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	// inputs are never mutated
	match, err := os.ReadFile(filepath.Join(finalDir, conf.MatchFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(match) != "1\tL1B1_1\tL1B2_1\n2\tL1B1_2\t----------\n3\t----------\tL1B2_2\n" {
		t.Errorf("expansion modified the final step's match table: %q", match)
	}
}

func Test_expandResults_noFrameshifts(t *testing.T) {
	flags, conf := testWorkspace(t)
	finalDir := filepath.Join(flags.dir, conf.StepsDir, "L2B1")
	if err := os.Remove(filepath.Join(finalDir, conf.FrameshiftFile)); err != nil {
		t.Fatal(err)
	}

	e, err := newExpander(flags, conf)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.expandResults(); err != nil {
		t.Fatalf("failed to expand results without a frameshift report: %v", err)
	}

	if _, err := os.Stat(filepath.Join(finalDir, conf.FrameshiftFile+expandedSuffix)); !os.IsNotExist(err) {
		t.Error("expansion invented a frameshift report for a run that had none")
	}
}

func Test_resolveCentroidHeader(t *testing.T) {
	e := testExpander(t)

	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{
			"synthetic representative",
			">centroid_1 L2B1_1 hypothetical protein",
			">centroid_1 a_locus1 hypothetical protein",
			false,
		},
		{
			"annotation spacing kept",
			">centroid_2 L1B1_2 putative  DNA-binding\tprotein ",
			">centroid_2 a_locus2 putative  DNA-binding\tprotein ",
			false,
		},
		{
			"real representative is untouched",
			">centroid_3 c_locus2 gyrB",
			">centroid_3 c_locus2 gyrB",
			false,
		},
		{
			"no representative",
			">centroid_4",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.resolveCentroidHeader(tt.line)
			if (err != nil) != tt.wantErr {
				t.Errorf("resolveCentroidHeader(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("resolveCentroidHeader(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func Test_verifyLineCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("1\ta\n2\tb\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := verifyLineCount(path, 2); err != nil {
		t.Errorf("verifyLineCount() = %v, want nil for a complete file", err)
	}

	err := verifyLineCount(path, 3)
	if err == nil {
		t.Fatal("verifyLineCount() expected an error for a truncated file")
	}

	var verifyErr *VerifyError
	if !errors.As(err, &verifyErr) {
		t.Fatalf("verifyLineCount() error = %T, want *VerifyError", err)
	}
	if verifyErr.Want != 3 || verifyErr.Got != 2 {
		t.Errorf("VerifyError = %+v, want 3 written 2 found", verifyErr)
	}
}

func Test_rowSize(t *testing.T) {
	row := []string{"a_locus1", absentMarker, "c_locus1", absentMarker}
	if got := rowSize(row); got != 2 {
		t.Errorf("rowSize() = %d, want 2", got)
	}
}
