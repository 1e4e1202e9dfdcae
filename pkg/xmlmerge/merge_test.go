package xmlmerge_test

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

const manifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example">
    <uses-permission android:name="android.permission.INTERNET"/>
    <!-- keep me -->
    <application android:name=".MainApplication" android:label="@string/app_name">
        <activity android:name=".MainActivity"/>
    </application>
</manifest>
`

func parseRoot(t *testing.T, src string) *etree.Element {
	t.Helper()
	doc, err := xmlmerge.Parse(src)
	require.NoError(t, err)
	return doc.Root()
}

func permission(name string) xmlmerge.Expected {
	return xmlmerge.Element("uses-permission", xmlmerge.Attrs{"android:name": xmlmerge.Lit(name)})
}

func TestMergeElements_AppendsNewChild(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, manifest)
	merged, err := xmlmerge.MergeElements(root, xmlmerge.Fragment(permission("android.permission.CAMERA")), xmlmerge.MergeOptions{})
	require.NoError(t, err)

	perms := merged.SelectElements("uses-permission")
	require.Len(t, perms, 2)
	assert.Equal(t, "android.permission.CAMERA", perms[1].SelectAttrValue("android:name", ""))

	assert.Len(t, root.SelectElements("uses-permission"), 1, "current must not be mutated")
}

func TestMergeElements_MatchedChildIsNotDuplicated(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, manifest)
	merged, err := xmlmerge.MergeElements(root, xmlmerge.Fragment(permission("android.permission.INTERNET")), xmlmerge.MergeOptions{})
	require.NoError(t, err)

	assert.Len(t, merged.SelectElements("uses-permission"), 1)
	assert.True(t, xmlmerge.ElementsEqual(root, merged, xmlmerge.EqualOptions{}))
}

func TestMergeElements_Idempotent(t *testing.T) {
	t.Parallel()

	expected := xmlmerge.Element("manifest", nil,
		permission("android.permission.CAMERA"),
		xmlmerge.Element("application", xmlmerge.Attrs{"android:name": xmlmerge.Lit(".MainApplication")},
			xmlmerge.Element("meta-data", xmlmerge.Attrs{
				"android:name":  xmlmerge.Lit("bacon"),
				"android:value": xmlmerge.Lit("pancake"),
			}),
		),
	)

	once, err := xmlmerge.MergeElements(parseRoot(t, manifest), expected, xmlmerge.MergeOptions{})
	require.NoError(t, err)
	twice, err := xmlmerge.MergeElements(once, expected, xmlmerge.MergeOptions{})
	require.NoError(t, err)

	assert.True(t, xmlmerge.ElementsEqual(once, twice, xmlmerge.EqualOptions{}))
	assert.Len(t, twice.SelectElement("application").SelectElements("meta-data"), 1)
}

func TestMergeElements_InsertAtIdx(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, manifest)
	merged, err := xmlmerge.MergeElements(root, xmlmerge.Fragment(permission("android.permission.CAMERA").At(0)), xmlmerge.MergeOptions{})
	require.NoError(t, err)

	children := merged.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "android.permission.CAMERA", children[0].SelectAttrValue("android:name", ""))
}

func TestMergeElements_DeletionFlag(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, manifest)
	merged, err := xmlmerge.MergeElements(root, xmlmerge.Fragment(permission("android.permission.INTERNET").Delete()), xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.Empty(t, merged.SelectElements("uses-permission"))

	again, err := xmlmerge.MergeElements(merged, xmlmerge.Fragment(permission("android.permission.INTERNET").Delete()), xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.True(t, xmlmerge.ElementsEqual(merged, again, xmlmerge.EqualOptions{}))
}

func TestMergeElements_LiteralPolicy(t *testing.T) {
	t.Parallel()

	expected := xmlmerge.Fragment(
		xmlmerge.Element("application", xmlmerge.Attrs{
			"android:name":  xmlmerge.Lit(".MainApplication"),
			"android:label": xmlmerge.Lit("Bacon"),
		}).Match("android:name"),
	)

	tests := []struct {
		name   string
		policy xmlmerge.LiteralPolicy
		want   string
	}{
		{name: "overwrite", policy: xmlmerge.LiteralOverwrite, want: "Bacon"},
		{name: "if absent", policy: xmlmerge.LiteralIfAbsent, want: "@string/app_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			merged, err := xmlmerge.MergeElements(parseRoot(t, manifest), expected, xmlmerge.MergeOptions{Literal: tt.policy})
			require.NoError(t, err)
			assert.Equal(t, tt.want, merged.SelectElement("application").SelectAttrValue("android:label", ""))
		})
	}
}

func TestMergeElements_NewValueAlwaysOverwrites(t *testing.T) {
	t.Parallel()

	expected := xmlmerge.Fragment(
		xmlmerge.Element("application", xmlmerge.Attrs{
			"android:name":  xmlmerge.Lit(".MainApplication"),
			"android:label": xmlmerge.NewValue("Bacon"),
		}),
	)

	merged, err := xmlmerge.MergeElements(parseRoot(t, manifest), expected, xmlmerge.MergeOptions{Literal: xmlmerge.LiteralIfAbsent})
	require.NoError(t, err)

	apps := merged.SelectElements("application")
	require.Len(t, apps, 1, "forced attributes do not take part in matching")
	assert.Equal(t, "Bacon", apps[0].SelectAttrValue("android:label", ""))
}

func TestMergeElements_CommentsAndText(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, `<resources><string name="app_name">Old</string></resources>`)
	expected := xmlmerge.Fragment(
		xmlmerge.Comment(" generated "),
		xmlmerge.Element("string", xmlmerge.Attrs{"name": xmlmerge.Lit("app_name")}, xmlmerge.Text("New")),
	)

	merged, err := xmlmerge.MergeElements(root, expected, xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "New", merged.SelectElement("string").Text())

	again, err := xmlmerge.MergeElements(merged, expected, xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.True(t, xmlmerge.ElementsEqual(merged, again, xmlmerge.EqualOptions{}))
}

func TestMergeElements_RootMismatch(t *testing.T) {
	t.Parallel()

	_, err := xmlmerge.MergeElements(parseRoot(t, manifest), xmlmerge.Element("resources", nil), xmlmerge.MergeOptions{})
	assert.True(t, errors.Is(err, xmlmerge.ErrShape))
}

func TestMergeElements_NilCurrentBuildsTree(t *testing.T) {
	t.Parallel()

	built, err := xmlmerge.MergeElements(nil, xmlmerge.Element("resources", nil,
		xmlmerge.Element("string", xmlmerge.Attrs{"name": xmlmerge.Lit("a")}, xmlmerge.Text("b")),
	), xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "b", built.SelectElement("string").Text())
}

func TestMergeDocument(t *testing.T) {
	t.Parallel()

	doc, err := xmlmerge.Parse(manifest)
	require.NoError(t, err)

	changed, err := xmlmerge.MergeDocument(doc, xmlmerge.Fragment(permission("android.permission.INTERNET")), xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = xmlmerge.MergeDocument(doc, xmlmerge.Fragment(permission("android.permission.CAMERA")), xmlmerge.MergeOptions{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, doc.Root().SelectElements("uses-permission"), 2)
}

func TestElementsEqual(t *testing.T) {
	t.Parallel()

	a := parseRoot(t, `<a x="1" y="2"><!-- c --><b>t</b></a>`)
	b := parseRoot(t, "<a y=\"2\" x=\"1\">\n  <b> t </b>\n</a>")

	assert.False(t, xmlmerge.ElementsEqual(a, b, xmlmerge.EqualOptions{}))
	assert.True(t, xmlmerge.ElementsEqual(a, b, xmlmerge.EqualOptions{DisregardComments: true}))

	c := parseRoot(t, `<a x="1" y="3"><b>t</b></a>`)
	assert.False(t, xmlmerge.ElementsEqual(a, c, xmlmerge.EqualOptions{DisregardComments: true}))
}
