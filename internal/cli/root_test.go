package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbrankings/internal/source"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const pfrPage = `<html><body><table id="passing"><thead><tr>
<th>Player</th><th>Tm</th><th>Age</th><th>Pos</th><th>G</th><th>GS</th><th>QBrec</th>
<th>Cmp</th><th>Att</th><th>Cmp%</th><th>Yds</th><th>TD</th><th>TD%</th><th>Int</th><th>Int%</th>
<th>Y/A</th><th>AY/A</th><th>Y/C</th><th>Y/G</th><th>Rate</th>
<th>Sk</th><th>Yds</th><th>Sk%</th><th>NY/A</th><th>ANY/A</th>
</tr></thead><tbody><tr>
<td>Tom Brady*</td><td>NWE</td><td>38</td><td>QB</td><td>16</td><td>16</td><td>12-4-0</td>
<td>402</td><td>624</td><td>64.4</td><td>4770</td><td>36</td><td>5.8</td><td>7</td><td>1.1</td>
<td>7.6</td><td>8.3</td><td>11.9</td><td>298.1</td><td>102.2</td>
<td>38</td><td>225</td><td>5.7</td><td>6.9</td><td>7.5</td>
</tr></tbody></table></body></html>`

const foPage = `<html><body><table><thead><tr>
<th>Player</th><th>Team</th><th>DYAR</th><th>YAR</th><th>DVOA</th><th>VOA</th><th>EYds</th><th>DPI</th>
</tr></thead><tbody><tr>
<td>T.Brady</td><td>NE</td><td>1398</td><td>1330</td><td>24.5%</td><td>22.0%</td><td>5003</td><td>4/58</td>
</tr></tbody></table></body></html>`

const otcPage = `<html><body><table><thead><tr>
<th>Player</th><th>Team</th><th>Salary Cap Value</th>
</tr></thead><tbody><tr>
<td>Tom Brady</td><td>Patriots</td><td>$14,000,000</td>
</tr></tbody></table></body></html>`

func stageFixtures(t *testing.T) string {
	t.Helper()
	rawDir := t.TempDir()
	pages := map[string]string{
		source.PFR.RawFile(2015): pfrPage,
		source.FO.RawFile(2015):  foPage,
		source.OTC.RawFile(2015): otcPage,
	}
	for name, html := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(rawDir, name), []byte(html), 0o644))
	}
	return rawDir
}

func TestBuildLoadShow(t *testing.T) {
	rawDir := stageFixtures(t)
	workDir := t.TempDir()
	csvPath := filepath.Join(workDir, "qb_stats.csv")
	dbPath := filepath.Join(workDir, "qb.db")

	out, err := execute(t, "build", "2015", "2015", csvPath, "--raw-dir", rawDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 rows")

	out, err = execute(t, "load", csvPath, "--store-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 1 rows")

	// Loading the same file again collides on the primary key.
	_, err = execute(t, "load", csvPath, "--store-path", dbPath)
	require.Error(t, err)

	out, err = execute(t, "show", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "T. BRADY")
	assert.Contains(t, out, "NE")
}

func TestBuildRejectsBadFilter(t *testing.T) {
	_, err := execute(t, "build", "2015", "2015", filepath.Join(t.TempDir(), "out.csv"),
		"--raw-dir", t.TempDir(), "--filter", "pos ==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter")
}

func TestBuildUnstagedSeasonFails(t *testing.T) {
	_, err := execute(t, "build", "2015", "2015", filepath.Join(t.TempDir(), "out.csv"),
		"--raw-dir", t.TempDir())
	require.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("qbrankings %s", Version))
}
