package view

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EscapesNoteText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageIndex, IndexPage{
		Email: "a@b.co",
		Notes: []NoteItem{{ID: "n1", Title: "<script>x</script>", Content: "body", Summary: "body", TimeAgo: "Just now"}},
	}, nil))

	out := buf.String()
	assert.Contains(t, out, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>x")
	assert.Contains(t, out, `action="/delete/n1"`)
	assert.Contains(t, out, "<title>My notes</title>")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	assert.Error(t, r.Render(&bytes.Buffer{}, "missing.html", nil, nil))
}

func TestStaticFS(t *testing.T) {
	data, err := fs.ReadFile(StaticFS(), "style.css")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
