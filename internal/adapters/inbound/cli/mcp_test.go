package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCommands_Help(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"mcp", "--help"}, "serve"},
		{[]string{"mcp", "serve", "--help"}, "--path"},
	}
	for _, tt := range tests {
		out, _, err := run(t, tt.args...)
		require.NoError(t, err, "%v", tt.args)
		assert.Contains(t, out, tt.want)
	}
}
