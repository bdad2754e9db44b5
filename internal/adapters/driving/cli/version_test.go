package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "threatfeed version dev")
}

func TestRequiresAPI(t *testing.T) {
	assert.False(t, requiresAPI(versionCmd))
	assert.False(t, requiresAPI(authSetCmd))
	assert.True(t, requiresAPI(feedListCmd))
	assert.True(t, requiresAPI(domainAddCmd))
}
