package gtf

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testGTF = `#!genome-build GRCh38
chr22	havana	gene	100	5000	.	+	.	gene_id "GENE1"; gene_name "ALPHA";
chr22	havana	exon	100	900	.	+	.	gene_id "GENE1"; exon_number "1";
chr22	havana	exon	2000	5000	.	+	.	gene_id "GENE1"; exon_number "2";
chr22	havana	gene	9000	9900	.	-	.	gene_id "GENE2"; gene_name "BETA";
chr22	havana	exon	9000	9900	.	-	.	gene_id "GENE2"; exon_number "1";
chrX	havana	gene	500	800	.	+	.	gene_id "GENE3"; gene_name "GAMMA";
chrX	havana	exon	500	800	.	+	.	gene_id "GENE3"; exon_number "1";
`

func writeGTF(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "annotation.gtf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_Genes(t *testing.T) {
	path := writeGTF(t, testGTF)

	type args struct {
		featureType string
		groupAttr   string
		scope       map[string]bool
	}
	tests := []struct {
		name    string
		args    args
		want    []string
		wantErr bool
	}{
		{
			"exons without scope",
			args{"exon", "gene_id", nil},
			[]string{"GENE1", "GENE2", "GENE3"},
			false,
		},
		{
			"exons scoped to chr22",
			args{"exon", "gene_id", map[string]bool{"chr22": true}},
			[]string{"GENE1", "GENE2"},
			false,
		},
		{
			"scope with no matching rows",
			args{"exon", "gene_id", map[string]bool{"chrM": true}},
			nil,
			false,
		},
		{
			"gene rows by name attribute",
			args{"gene", "gene_name", map[string]bool{"chrX": true}},
			[]string{"GAMMA"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Genes(path, tt.args.featureType, tt.args.groupAttr, tt.args.scope)
			if (err != nil) != tt.wantErr {
				t.Errorf("Genes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Genes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Genes_missingAttribute(t *testing.T) {
	path := writeGTF(t, "chr22\thavana\texon\t1\t10\t.\t+\t.\texon_number \"1\";\n")

	if _, err := Genes(path, "exon", "gene_id", nil); err == nil {
		t.Error("Genes() expected an error for a row without the grouping attribute")
	}
}

func Test_Seqnames(t *testing.T) {
	path := writeGTF(t, testGTF)

	got, err := Seqnames(path)
	if err != nil {
		t.Fatalf("Seqnames() error = %v", err)
	}

	want := map[string]bool{"chr22": true, "chrX": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Seqnames() = %v, want %v", got, want)
	}
}

func Test_attribute(t *testing.T) {
	type args struct {
		col string
		key string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			"first attribute",
			args{`gene_id "GENE1"; gene_version "5";`, "gene_id"},
			"GENE1",
			false,
		},
		{
			"later attribute",
			args{`gene_id "GENE1"; gene_name "ALPHA";`, "gene_name"},
			"ALPHA",
			false,
		},
		{
			"absent attribute",
			args{`gene_id "GENE1";`, "transcript_id"},
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := attribute(tt.args.col, tt.args.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("attribute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("attribute() = %v, want %v", got, tt.want)
			}
		})
	}
}
