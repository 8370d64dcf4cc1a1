package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchos/dataset-builder/config"
	"github.com/researchos/dataset-builder/errors"
	dstest "github.com/researchos/dataset-builder/internal/testing"
)

func init() {
	pterm.DisableStyling()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixtureConfig(t *testing.T) string {
	t.Helper()
	table := dstest.WriteTable(t, "objects.csv", dstest.SubjectTrialRows())
	return dstest.WriteConfig(t, table, dstest.SubjectTrialHierarchy(), nil)
}

func TestBuild(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, err := run(t, "build", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Building the dataset at path: "+cfgPath)
	assert.Contains(t, out, "Successfully built the dataset!")
	assert.Contains(t, out, "5 entities across 2 levels (Subject: 2, Trial: 3)")
}

func TestBuild_PathFlag(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, err := run(t, "build", "--path", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Building the dataset at path: "+cfgPath)

	_, err = run(t, "build")
	assert.Error(t, err)
	_, err = run(t, "build", cfgPath, "--path", cfgPath+".other")
	assert.Error(t, err)
}

func TestBuild_Tree(t *testing.T) {
	out, err := run(t, "build", fixtureConfig(t), "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Nairobi_006")
	assert.Contains(t, out, "Mombasa_001")
}

func TestBuild_Verbose(t *testing.T) {
	out, err := run(t, "build", fixtureConfig(t), "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "ingesting: reading the data objects table")
	assert.Contains(t, out, "queryable: dataset ready")
	assert.Contains(t, out, "Depth")
}

func TestBuild_JSON(t *testing.T) {
	out, err := run(t, "build", fixtureConfig(t), "--json")
	require.NoError(t, err)
	assert.NotContains(t, out, "Building the dataset")

	var g struct {
		Nodes []map[string]interface{} `json:"nodes"`
		Links []map[string]interface{} `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Links, 3)
}

func TestBuild_DumpMapping(t *testing.T) {
	out, err := run(t, "build", fixtureConfig(t), "--dump-mapping")
	require.NoError(t, err)
	assert.Contains(t, out, `"Nairobi_007": {}`)
}

func TestBuild_Failure(t *testing.T) {
	table := dstest.WriteTable(t, "objects.csv", dstest.SubjectTrialRows())
	cfgPath := dstest.WriteConfig(t, table, []map[string]string{{"Subject": "Subject"}, {"Session": "Session"}}, nil)

	out, err := run(t, "build", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingColumn))
	assert.Contains(t, out, "[MissingColumn]")
	assert.NotContains(t, out, "Successfully")
}

func TestLookup(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, err := run(t, "lookup", cfgPath, "Subject=Nairobi", "Trial=Nairobi_006")
	require.NoError(t, err)
	assert.Equal(t, "Subject:Nairobi → Trial:Nairobi_006\n", out)

	out, err = run(t, "lookup", cfgPath, "Trial=Mombasa_001", "--json")
	require.NoError(t, err)
	var v entityView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Trial", v.Level)
	assert.Equal(t, map[string]string{"Subject": "Mombasa", "Trial": "Mombasa_001"}, v.Key)

	_, err = run(t, "lookup", cfgPath, "Subject=Mombasa", "Trial=Nairobi_006")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = run(t, "lookup", cfgPath, "Session=1")
	assert.True(t, errors.Is(err, errors.ErrUnknownLevel))

	_, err = run(t, "lookup", cfgPath, "Nairobi")
	assert.Error(t, err)
}

func TestLookup_All(t *testing.T) {
	table := dstest.WriteTable(t, "objects.csv", [][]string{
		{"Subject", "Trial"},
		{"Nairobi", "Baseline"},
		{"Mombasa", "Baseline"},
	})
	cfgPath := dstest.WriteConfig(t, table, dstest.SubjectTrialHierarchy(), nil)

	out, err := run(t, "lookup", cfgPath, "Trial=Baseline", "--all")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Subject:Nairobi → Trial:Baseline",
		"Subject:Mombasa → Trial:Baseline",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestAncestry(t *testing.T) {
	out, err := run(t, "ancestry", fixtureConfig(t), "Trial=Nairobi_007")
	require.NoError(t, err)
	assert.Equal(t, "0\tSubject\tNairobi\n1\tTrial\tNairobi_007\n", out)
}

func TestConfigInitValidateShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dataset.toml")

	out, err := run(t, "config", "init", cfgPath, "--level", "Subject=SubjectName", "--level", "Trial")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.LoadFromFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"SubjectName": "Subject"}, {"Trial": "Trial"}}, cfg.DataObjectsHierarchy)

	_, err = run(t, "config", "init", cfgPath, "--level", "Subject")
	assert.Error(t, err)
	_, err = run(t, "config", "init", cfgPath, "--level", "Subject", "--force")
	require.NoError(t, err)
	_, err = os.Stat(cfgPath + ".back1")
	assert.NoError(t, err)

	out, err = run(t, "config", "validate", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, `Subject ← column "Subject"`)

	out, err = run(t, "config", "show", cfgPath, "--format", "json")
	require.NoError(t, err)
	var shown map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, float64(1), shown["num_header_rows"])

	_, err = run(t, "config", "show", cfgPath, "--format", "ini")
	assert.Error(t, err)
}

func TestConfigInit_Malformed(t *testing.T) {
	_, err := run(t, "config", "init", filepath.Join(t.TempDir(), "dataset.toml"), "--level", "=Subject")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dataset-builder")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["go_version"])
}
