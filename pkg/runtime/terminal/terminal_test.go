package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCLI_GenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	cli := NewCLI(Options{Output: &out})
	cli.rootCmd.SetArgs([]string{
		"generate",
		"--records", "25",
		"--days", "30",
		"--seed", "42",
		"--output-dir", dir,
	})
	cli.rootCmd.SetOut(&out)
	cli.rootCmd.SetErr(&out)

	require.NoError(t, cli.Execute())

	dataPath := filepath.Join(dir, "sales_data.xlsx")
	reportPath := filepath.Join(dir, "sales_summary.xlsx")
	for _, p := range []string{dataPath, reportPath} {
		_, err := os.Stat(p)
		assert.NoError(t, err, "expected output file %s", p)
	}

	f, err := excelize.OpenFile(reportPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t,
		[]string{"Summary", "Product_Sales", "Regional_Sales", "Weekly_Trend", "Channel_Sales"},
		f.GetSheetList())

	assert.Contains(t, out.String(), "Key Insights:")
}

func TestCLI_GenerateRejectsInvalidCount(t *testing.T) {
	var out bytes.Buffer

	cli := NewCLI(Options{Output: &out})
	cli.rootCmd.SetArgs([]string{"generate", "--records", "0", "--output-dir", t.TempDir()})
	cli.rootCmd.SetOut(&out)
	cli.rootCmd.SetErr(&out)

	assert.Error(t, cli.Execute())
}

func TestCLI_ReportRequiresInput(t *testing.T) {
	var out bytes.Buffer

	cli := NewCLI(Options{Output: &out})
	cli.rootCmd.SetArgs([]string{"report"})
	cli.rootCmd.SetOut(&out)
	cli.rootCmd.SetErr(&out)

	assert.Error(t, cli.Execute())
}
