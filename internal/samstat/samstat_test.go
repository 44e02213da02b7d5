package samstat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// two properly paired mapped pairs plus one unmapped pair, with one
// secondary record that must not be counted
var testSAM = strings.Join([]string{
	"@HD\tVN:1.6\tSO:unsorted",
	"@SQ\tSN:chr22\tLN:50818468",
	"@PG\tID:hisat2\tPN:hisat2\tVN:2.2.1",
	"r1\t99\tchr22\t100\t60\t10M\t=\t200\t110\tACGTACGTAC\tIIIIIIIIII",
	"r1\t147\tchr22\t200\t60\t10M\t=\t100\t-110\tACGTACGTAC\tIIIIIIIIII",
	"r2\t99\tchr22\t300\t60\t10M\t=\t400\t110\tACGTACGTAC\tIIIIIIIIII",
	"r2\t147\tchr22\t400\t60\t10M\t=\t300\t-110\tACGTACGTAC\tIIIIIIIIII",
	"r2\t403\tchr22\t900\t0\t10M\t=\t300\t0\tACGTACGTAC\tIIIIIIIIII",
	"r3\t77\t*\t0\t0\t*\t*\t0\t0\tACGTACGTAC\tIIIIIIIIII",
	"r3\t141\t*\t0\t0\t*\t*\t0\t0\tACGTACGTAC\tIIIIIIIIII",
	"",
}, "\n")

func writeSAM(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aligned.sam")
	if err := os.WriteFile(path, []byte(testSAM), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_Verify(t *testing.T) {
	stats, err := Verify(writeSAM(t), map[string]bool{"chr22": true})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	want := Stats{Total: 6, Mapped: 4, ProperlyPaired: 4}
	if stats != want {
		t.Errorf("Verify() = %+v, want %+v", stats, want)
	}

	wantRate := 100 * 4.0 / 6.0
	if got := stats.Rate(); got != wantRate {
		t.Errorf("Rate() = %v, want %v", got, wantRate)
	}
}

func Test_Verify_outOfScope(t *testing.T) {
	if _, err := Verify(writeSAM(t), map[string]bool{"chr21": true}); err == nil {
		t.Error("Verify() expected an error for a header reference outside the scope")
	}
}

func Test_Verify_emptyScope(t *testing.T) {
	// no scope means no header restriction
	if _, err := Verify(writeSAM(t), nil); err != nil {
		t.Errorf("Verify() error = %v, want nil with an empty scope", err)
	}
}

func Test_Rate_zeroTotal(t *testing.T) {
	if got := (Stats{}).Rate(); got != 0 {
		t.Errorf("Rate() = %v, want 0 for an empty artifact", got)
	}
}
