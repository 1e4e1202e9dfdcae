package xmlmerge_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := xmlmerge.Parse(`<manifest android:name=></manifest>`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlmerge.ErrParse))

	_, err = xmlmerge.Parse(``)
	assert.True(t, errors.Is(err, xmlmerge.ErrParse))
}

func TestReadFile_Fallbacks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	doc, err := xmlmerge.ReadFile(ctx, filepath.Join(dir, "strings.xml"), xmlmerge.ResourcesFallback())
	require.NoError(t, err)
	assert.Equal(t, "resources", doc.Root().Tag)

	seed := etree.NewElement("resources")
	seed.CreateElement("string").SetText("x")
	doc, err = xmlmerge.ReadFile(ctx, filepath.Join(dir, "colors.xml"), xmlmerge.Fallback{Element: seed})
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Root().SelectElement("string").Text())

	_, err = xmlmerge.ReadFile(ctx, filepath.Join(dir, "none.xml"), xmlmerge.Fallback{})
	require.Error(t, err)
}

func TestReadFile_MalformedFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	require.NoError(t, os.WriteFile(path, []byte("<manifest android:name=>"), 0o600))

	_, err := xmlmerge.ReadFile(context.Background(), path, xmlmerge.ResourcesFallback())

	var parseErr *xmlmerge.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestWriteFileOrRemoveUponNoResources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "res", "values", "strings.xml")

	doc, err := xmlmerge.Parse(`<resources><string name="app_name">Bacon</string></resources>`)
	require.NoError(t, err)

	outcome, err := xmlmerge.WriteFileOrRemoveUponNoResources(ctx, path, doc, xmlmerge.WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, xmlmerge.OutcomeWritten, outcome)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(written), "\n    <string name=\"app_name\">Bacon</string>\n"))

	outcome, err = xmlmerge.WriteFileOrRemoveUponNoResources(ctx, path, doc, xmlmerge.WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, xmlmerge.OutcomeUnchanged, outcome)

	empty, err := xmlmerge.Parse("<resources>\n  <!-- nothing -->\n</resources>")
	require.NoError(t, err)

	outcome, err = xmlmerge.WriteFileOrRemoveUponNoResources(ctx, path, empty, xmlmerge.WriteOptions{DisregardComments: true})
	require.NoError(t, err)
	assert.Equal(t, xmlmerge.OutcomeRemoved, outcome)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	outcome, err = xmlmerge.WriteFileOrRemoveUponNoResources(ctx, path, empty, xmlmerge.WriteOptions{DisregardComments: true})
	require.NoError(t, err)
	assert.Equal(t, xmlmerge.OutcomeUnchanged, outcome)
}

func TestRenderOrRemove_CommentsCountUnlessDisregarded(t *testing.T) {
	t.Parallel()

	doc, err := xmlmerge.Parse("<resources><!-- keep --></resources>")
	require.NoError(t, err)

	_, remove, err := xmlmerge.RenderOrRemove(doc, xmlmerge.WriteOptions{})
	require.NoError(t, err)
	assert.False(t, remove)

	_, remove, err = xmlmerge.RenderOrRemove(doc, xmlmerge.WriteOptions{DisregardComments: true})
	require.NoError(t, err)
	assert.True(t, remove)
}

func TestEscapeAndroidString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "plain", want: "plain"},
		{in: `it's "x"`, want: `it\'s \"x\"`},
		{in: "a\nb\tc", want: `a\nb\tc`},
		{in: "@handle", want: `\@handle`},
		{in: " padded", want: `" padded"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, xmlmerge.EscapeAndroidString(tt.in))
	}

	assert.Equal(t, `it's "x"`, xmlmerge.UnescapeAndroidString(`it\'s \"x\"`))
	assert.Equal(t, " padded", xmlmerge.UnescapeAndroidString(`" padded"`))
	assert.Equal(t, "a\nb\tc\rd", xmlmerge.UnescapeAndroidString(`a\nb\tc\rd`))

	for _, in := range []string{"line one\nline two", "tab\there", "crlf\r\n", `it's "x" @home`, " padded\n"} {
		assert.Equal(t, in, xmlmerge.UnescapeAndroidString(xmlmerge.EscapeAndroidString(in)), "%q", in)
	}
}
