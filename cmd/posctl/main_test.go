package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_ComandosRegistrados(t *testing.T) {
	for _, name := range []string{"migrate", "seed", "audit-stock"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSeed_Flags(t *testing.T) {
	f := seedCmd.Flags().Lookup("admin-user")
	require.NotNil(t, f)
	assert.Equal(t, "admin", f.DefValue)
	assert.NotNil(t, seedCmd.Flags().Lookup("demo"))
	assert.NotNil(t, auditCmd.Flags().Lookup("fail"))
}

func TestDemoCatalog_TieneInventariados(t *testing.T) {
	inventoried := 0
	for _, g := range demoCatalog {
		for _, p := range g.products {
			if p.inventoried {
				inventoried++
			}
		}
	}
	assert.Positive(t, inventoried)
}
