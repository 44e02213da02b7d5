package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func Test_fastaSeqnames(t *testing.T) {
	dir := t.TempDir()

	type args struct {
		content string
	}
	tests := []struct {
		name    string
		args    args
		want    map[string]bool
		wantErr bool
	}{
		{
			"single chromosome",
			args{">chr22 Homo sapiens chromosome 22\nACGTACGT\nACGT\n"},
			map[string]bool{"chr22": true},
			false,
		},
		{
			"multiple sequences",
			args{">chr21\nACGT\n>chr22\nACGT\n"},
			map[string]bool{"chr21": true, "chr22": true},
			false,
		},
		{
			"no sequences",
			args{"ACGT\n"},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".fa")
			if err := os.WriteFile(path, []byte(tt.args.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := fastaSeqnames(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("fastaSeqnames() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fastaSeqnames() = %v, want %v", got, tt.want)
			}
		})
	}
}
