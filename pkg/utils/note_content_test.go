package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	assert.Equal(t, "a<br />b<br />c", NormalizeContent("a\nb\r\nc"))
	assert.Equal(t, "no breaks", NormalizeContent("no breaks"))
	assert.Equal(t, "<br /><br />", NormalizeContent("\n\r\n"))
}

func TestDenormalizeContent(t *testing.T) {
	assert.Equal(t, "a\nb", DenormalizeContent("a<br />b"))
}

func TestContentHTMLEscapesEverythingButBreaks(t *testing.T) {
	got := ContentHTML("<script>x</script><br />line & two")
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;<br />line &amp; two", string(got))
}
