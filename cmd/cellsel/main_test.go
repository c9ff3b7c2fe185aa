package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testTable = "" +
	"Name,Amount,AmountNet,City\n" +
	"Alice,10,8,Berlin\n" +
	"Bob,20,16,Vienna\n" +
	"Carol,30,24,Paris\n"

const testScript = `
[[op]]
kind = "select"
row = 0
rows = 2
columns = ["Amount*"]

[[op]]
kind = "unselect"
row = 1
col = 2

[[op]]
kind = "remove-rows"
row = 0
`

func writeTestFiles(t *testing.T, table, script string) (tablePath, scriptPath string) {
	t.Helper()
	dir := t.TempDir()
	tablePath = filepath.Join(dir, "table.csv")
	scriptPath = filepath.Join(dir, "script.toml")
	require.NoError(t, os.WriteFile(tablePath, []byte(table), 0o600))
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o600))
	return tablePath, scriptPath
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"cellsel"}, args...))
	return stdout.String(), err
}

func TestSelectCommand(t *testing.T) {
	tablePath, scriptPath := writeTestFiles(t, testTable, testScript)

	tests := []struct {
		format string
		want   string
	}{
		{format: "cells", want: "Row,Column,Value\n0,Amount,20\n"},
		{format: "rows", want: "Name,Amount,AmountNet,City\n,20,,\n"},
		{format: "bounds", want: "Amount\n20\n"},
		{format: "regions", want: "Row,Column,Rows,Columns\n0,1,1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runApp(t, "select", "--format", tt.format, tablePath, scriptPath)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}

	out, err := runApp(t, "select", "--delimiter", ";", tablePath, scriptPath)
	require.NoError(t, err)
	require.Equal(t, "Row;Column;Value\n0;Amount;20\n", out)

	_, err = runApp(t, "select", "--format", "json", tablePath, scriptPath)
	require.ErrorContains(t, err, "invalid format")

	_, err = runApp(t, "select", tablePath)
	require.Error(t, err)

	_, err = runApp(t, "select", filepath.Join(t.TempDir(), "missing.csv"), scriptPath)
	require.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	tablePath, scriptPath := writeTestFiles(t, testTable, testScript)

	out, err := runApp(t, "show", tablePath, scriptPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "table.csv", lines[0])
	require.Contains(t, lines[1], "Name")
	require.Contains(t, lines[2], "Bob")
	require.Contains(t, lines[3], "Carol")
}

func TestHTMLCommand(t *testing.T) {
	tablePath, scriptPath := writeTestFiles(t, testTable, testScript)

	out, err := runApp(t, "html", "--class", "hl", tablePath, scriptPath)
	require.NoError(t, err)
	require.Contains(t, out, "<caption>table.csv</caption>")
	require.Contains(t, out, "<tr><td>Bob</td><td class='hl'>20</td><td>16</td><td>Vienna</td></tr>")
	require.NotContains(t, out, "Alice")
}

func TestScriptErrors(t *testing.T) {
	tablePath, scriptPath := writeTestFiles(t, testTable, "[[op]]\nkind = \"explode\"\n")
	_, err := runApp(t, "select", tablePath, scriptPath)
	require.ErrorContains(t, err, `unknown op kind "explode"`)

	tablePath, scriptPath = writeTestFiles(t, testTable, "mode = \"Single\"\n[[op]]\nkind = \"select-all\"\n")
	_, err = runApp(t, "select", tablePath, scriptPath)
	require.ErrorContains(t, err, `op 0 "select-all"`)
}
