package main

import (
	"path/filepath"
	"testing"

	"atomkv/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestSetThenGet(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, execute(t, "set", "greeting", "hello", "--type", "string", "--store", store))
	require.NoError(t, execute(t, "get", "greeting", "--store", store))

	eng, err := engine.Open(store)
	require.NoError(t, err)
	defer eng.Close()

	value, domain, found, err := eng.Get("greeting")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", value)
	assert.Equal(t, engine.DomainString, domain)
}

func TestSetTypedDomains(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, execute(t, "set", "visitCount", "5", "--type", "number", "--store", store))
	require.NoError(t, execute(t, "set", "darkMode", "true", "--type", "bool", "--store", store))
	require.NoError(t, execute(t, "set", "profile", `{"name":"ada"}`, "--type", "json", "--store", store))

	eng, err := engine.Open(store)
	require.NoError(t, err)
	defer eng.Close()

	_, domain, _, err := eng.Get("visitCount")
	require.NoError(t, err)
	assert.Equal(t, engine.DomainNumber, domain)

	_, domain, _, err = eng.Get("darkMode")
	require.NoError(t, err)
	assert.Equal(t, engine.DomainBool, domain)

	_, domain, _, err = eng.Get("profile")
	require.NoError(t, err)
	assert.Equal(t, engine.DomainJSON, domain)
}

func TestSetRejectsBadTypedValues(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	assert.Error(t, execute(t, "set", "n", "abc", "--type", "number", "--store", store))
	assert.Error(t, execute(t, "set", "b", "maybe", "--type", "bool", "--store", store))
	assert.Error(t, execute(t, "set", "j", "{broken", "--type", "json", "--store", store))
	assert.Error(t, execute(t, "set", "x", "v", "--type", "blob", "--store", store))
}

func TestGetAbsentKeyFails(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	assert.Error(t, execute(t, "get", "missing", "--store", store))
}

func TestRemoveAndHasAndClear(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, execute(t, "set", "a", "1", "--type", "string", "--store", store))
	require.NoError(t, execute(t, "set", "b", "2", "--type", "string", "--store", store))

	require.NoError(t, execute(t, "has", "a", "--store", store))
	require.NoError(t, execute(t, "remove", "a", "--store", store))
	assert.Error(t, execute(t, "has", "a", "--store", store))

	require.NoError(t, execute(t, "clear", "--yes", "--store", store))

	eng, err := engine.Open(store)
	require.NoError(t, err)
	defer eng.Close()
	keys, err := eng.AllKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStat(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, execute(t, "set", "a", "1", "--type", "string", "--store", store))
	require.NoError(t, execute(t, "stat", "--store", store))
}
