package status

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateOnRuneBoundaries(t *testing.T) {
	long := []rune(strings.Repeat("π", 50))

	out := truncate(long, 40)
	require.Len(t, out, 40)
	assert.True(t, utf8.ValidString(string(out)))
	assert.Equal(t, "...", string(out[37:]))

	short := []rune("✔ ok")
	assert.Equal(t, short, truncate(short, 40))
}

func TestViewSurvivesLongUnicodeMessage(t *testing.T) {
	c := New()
	c.SetSize(30, 1)
	c.SetLeftContent("costau  300ms")

	cmd := c.ShowSuccess(strings.Repeat("π", 60))
	require.NotNil(t, cmd)

	view := c.View()
	assert.True(t, utf8.ValidString(view))
}

func TestStaleClearKeepsNewerMessage(t *testing.T) {
	c := New()
	c.SetSize(40, 1)

	c.ShowInfo("first")
	first := c.message.Timestamp
	c.ShowInfo("second")
	c.message.Timestamp = first.Add(time.Millisecond)

	c.Update(clearMessageMsg{timestamp: first})
	require.NotNil(t, c.message)
	assert.Equal(t, "second", c.message.Content)

	c.Update(clearMessageMsg{timestamp: c.message.Timestamp})
	assert.Nil(t, c.message)
}
