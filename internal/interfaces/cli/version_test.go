package cli

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_Text(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "entitylens dev")
	assert.Contains(t, out, runtime.Version())
}

func TestVersion_JSON(t *testing.T) {
	out, _, err := runCLI(t, "", "-o", "json", "version")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, Version, got["version"])
	assert.Equal(t, GitCommit, got["commit"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, got["platform"])
}
