package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"script.js", "style.css", "favicon.svg"} {
		_, err := fs.Stat(Assets, name)
		assert.NoError(t, err, name)
	}
}

// The accordion pairs each "#faqs h3" with its next sibling, hides every
// answer on load and flips one answer per click.
func TestAccordionScriptContract(t *testing.T) {
	data, err := fs.ReadFile(Assets, "script.js")
	require.NoError(t, err)
	script := string(data)

	assert.Contains(t, script, `querySelectorAll("#faqs h3")`)
	assert.Contains(t, script, "nextElementSibling")
	assert.Contains(t, script, `answer.style.display = "none";`)
	assert.Contains(t, script, `answer.style.display = shown ? "none" : "block";`)
	assert.Contains(t, script, "aria-expanded")
}
