package git

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func createBenchRepo(tb testing.TB, commits, files, vendorLines int) string {
	tb.Helper()

	repo := newTestRepo(tb)
	base := time.Now().Add(-time.Duration(commits+10) * time.Hour)

	for i := 0; i < commits; i++ {
		when := base.Add(time.Duration(i+1) * time.Hour)

		for f := 0; f < files; f++ {
			rel := fmt.Sprintf("src/file%03d.js", f)
			// Only the last line changes, so blame has to walk back for the rest.
			content := fmt.Sprintf("function f%d() {\n  return %d;\n}\n// commit %d\n", f, f, i)
			repo.write(rel, content)
		}

		if vendorLines > 0 {
			var sb strings.Builder
			sb.Grow(vendorLines * 16)
			for l := 0; l < vendorLines; l++ {
				sb.WriteString(fmt.Sprintf("x%d\n", i))
			}
			repo.write("vendor/big.js", sb.String())
		}

		repo.commit(fmt.Sprintf("commit %d", i), "bench", when)
	}

	return repo.dir
}

func benchmarkReadLines(b *testing.B, repoDir string, opts ReadOptions) {
	opts.RepoPath = repoDir
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader, err := NewBlameReader(opts)
		if err != nil {
			b.Fatalf("NewBlameReader: %v", err)
		}
		records, err := reader.ReadLines(context.Background())
		if err != nil {
			b.Fatalf("ReadLines: %v", err)
		}
		if len(records) == 0 {
			b.Fatalf("unexpected empty records")
		}
	}
}

func BenchmarkBlameReader_ReadLines(b *testing.B) {
	benchmarkReadLines(b, createBenchRepo(b, 20, 10, 0), ReadOptions{})
}

func BenchmarkBlameReader_ReadLines_LanguageMode(b *testing.B) {
	benchmarkReadLines(b, createBenchRepo(b, 20, 10, 0), ReadOptions{TypeMode: TypeModeLanguage})
}

func BenchmarkBlameReader_ReadLines_SkipVendor(b *testing.B) {
	benchmarkReadLines(b, createBenchRepo(b, 20, 5, 2000), ReadOptions{SkipVendor: true})
}

func BenchmarkBlameReader_ReadLines_ExcludeLargePath(b *testing.B) {
	benchmarkReadLines(b, createBenchRepo(b, 20, 5, 2000), ReadOptions{Exclude: []string{"vendor/**"}})
}
