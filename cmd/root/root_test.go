package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/expense-tracker/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expense-tracker", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "personal expense tracker")
	assert.Contains(t, root.Cmd.Long, "interactive menu")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	configFlag := root.Cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	dataDirFlag := root.Cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, dataDirFlag)
	assert.Contains(t, dataDirFlag.Usage, "Directory")
}

func TestGetContainer_Uninitialized(t *testing.T) {
	saved := root.AppContainer
	root.AppContainer = nil
	t.Cleanup(func() { root.AppContainer = saved })

	_, err := root.GetContainer()
	assert.Error(t, err)
}

func TestRootCommand_RunsShellAndProcessesRecurring(t *testing.T) {
	root.Init()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EXPENSES_LOG_LEVEL", "error")
	dataDir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dataDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "recurring_expenses.json"),
		[]byte(`[{"name":"Rent","amount":1000,"category":"Housing","description":"Rent","frequency":"Monthly","day":1}]`), 0600))

	root.Now = func() time.Time { return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { root.Now = time.Now })

	var out bytes.Buffer
	root.Cmd.SetIn(strings.NewReader("1\n11\n"))
	root.Cmd.SetOut(&out)
	root.Cmd.SetArgs([]string{"--data-dir", dataDir})
	t.Cleanup(func() {
		root.Cmd.SetIn(nil)
		root.Cmd.SetOut(nil)
		root.Cmd.SetArgs(nil)
	})

	require.NoError(t, root.Cmd.Execute())

	assert.Contains(t, out.String(), "1. Amount: 1,000.00, Category: Housing, Description: Rent, Date: 01-03-2024")
	data, err := os.ReadFile(filepath.Join(dataDir, "expenses.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description": "Rent"`)
}
