package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render(Document{
		Title: "Work Experience Letter",
		Lines: []string{"This certifies that Jane (ID 42) worked with us."},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-1.4")))
	assert.True(t, bytes.HasSuffix(out, []byte("%%EOF")))
	assert.Contains(t, string(out), "(Work Experience Letter) Tj")
	assert.Contains(t, string(out), `Jane \(ID 42\)`)
}

func TestRender_Empty(t *testing.T) {
	_, err := Render(Document{})
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	long := strings.Repeat("word ", 40)
	lines := wrap(long, 20)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}

	assert.Equal(t, []string{""}, wrap("   ", 20))
}
