package android_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/android"
	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

func TestStringItems(t *testing.T) {
	t.Parallel()

	doc, err := xmlmerge.FromFallback("strings.xml", xmlmerge.ResourcesFallback())
	require.NoError(t, err)

	changed, err := android.SetStringItem(doc, "app_name", "Bacon's App")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, `Bacon\'s App`, doc.Root().SelectElement("string").Text())

	value, ok := android.StringItem(doc, "app_name")
	assert.True(t, ok)
	assert.Equal(t, "Bacon's App", value)

	changed, err = android.SetStringItem(doc, "app_name", "Bacon's App")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = android.RemoveStringItem(doc, "app_name")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, xmlmerge.IsEmptyResources(doc, xmlmerge.WriteOptions{}))

	_, ok = android.StringItem(doc, "app_name")
	assert.False(t, ok)
}
