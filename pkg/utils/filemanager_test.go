package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "N11_Yukleme_Final.xlsx")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileAtomic_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteFileAtomic(filepath.Join(blocker, "out.csv"), []byte("data"))
	assert.Error(t, err)
	assert.False(t, fileExists(filepath.Join(blocker, "out.csv")))
}

func TestDeliver(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Idefix_Urun_Listesi_Hazir.csv")
	require.NoError(t, os.WriteFile(src, []byte("a;b\n"), 0644))

	fm := NewFileManager(filepath.Join(dir, "downloads"))
	delivered, err := fm.Deliver(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "downloads", "Idefix_Urun_Listesi_Hazir.csv"), delivered)

	data, err := os.ReadFile(delivered)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", string(data))
}

func TestDeliver_Disabled(t *testing.T) {
	delivered, err := NewFileManager("").Deliver("whatever.xlsx")
	require.NoError(t, err)
	assert.Empty(t, delivered)

	var fm *FileManager
	assert.False(t, fm.Enabled())
}

func TestDeliver_MissingSource(t *testing.T) {
	fm := NewFileManager(t.TempDir())
	_, err := fm.Deliver(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorContains(t, err, "nothing to deliver")
}

func TestDeliver_TimestampSubdirs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "N11_Yukleme_Final.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	fm := NewFileManager(filepath.Join(dir, "downloads"))
	fm.UseTimestampSubdirs = true

	delivered, err := fm.Deliver(src)
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, filepath.Join(dir, "downloads", now.Format("2006"), now.Format("01"), now.Format("02"), "N11_Yukleme_Final.xlsx"), delivered)
	assert.FileExists(t, delivered)
}

func TestGenerateOutputFileName(t *testing.T) {
	assert.Equal(t, "N11_Yukleme_Final.xlsx", GenerateOutputFileName("N11_Yukleme_Final.xlsx", nil))

	name := GenerateOutputFileName("exports/{target}_{date}.xlsx", map[string]string{"target": "n11"})
	assert.Equal(t, "exports/n11_"+time.Now().Format("20060102")+".xlsx", name)

	withID := GenerateOutputFileName("{target}_{uuid}.csv", map[string]string{"target": "idefix"})
	assert.True(t, strings.HasPrefix(withID, "idefix_"))
	assert.Len(t, withID, len("idefix_")+36+len(".csv"))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 1, 15, 14, 30, 22, 0, time.UTC)

	path, err := WriteSummaryLog(ProcessingSummary{
		StartTime: start,
		EndTime:   start.Add(2 * time.Second),
		Source:    "Ürünleriniz.xlsx",
		Succeeded: []TargetInfo{{Target: "n11", OutputFile: "N11_Yukleme_Final.xlsx", RowsRead: 5, RowsWritten: 3, RowsSkipped: 2}},
		Failed:    []FailedTargetInfo{{Target: "idefix", ErrorMessage: "file not found"}},
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20260115_143022.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Successful:     1")
	assert.Contains(t, text, "5 read, 3 written, 2 skipped")
	assert.Contains(t, text, "Error:  file not found")
}

func TestFileExistsRegularFilesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	assert.False(t, fileExists(path))
	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.True(t, fileExists(path))
	assert.False(t, fileExists(dir))
}
