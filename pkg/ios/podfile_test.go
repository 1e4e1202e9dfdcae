package ios_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/gencode"
	"github.com/yaklabco/plugmod/pkg/ios"
)

const podfile = `require_relative '../node_modules/react-native/scripts/react_native_pods'

platform :ios, '13.0'

target 'MyApp' do
  config = use_native_modules!
  use_react_native!(:path => config[:reactNativePath])
end
`

func TestUpdatePodfile(t *testing.T) {
	t.Parallel()

	out, err := ios.UpdatePodfile(podfile, "MyApp")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, ios.AutolinkingRequire, lines[0])
	for i, line := range lines {
		if line == "target 'MyApp' do" {
			assert.Equal(t, "  use_expo_modules!", lines[i+1])
		}
	}
	assert.Equal(t, 1, strings.Count(out, "use_expo_modules!"))

	again, err := ios.UpdatePodfile(out, "MyApp")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestUpdatePodfile_NestedTargetIndent(t *testing.T) {
	t.Parallel()

	src := "abstract_target 'Common' do\n  target 'MyApp' do\n    pod 'A'\n  end\nend\n"
	out, err := ios.UpdatePodfile(src, "MyApp")
	require.NoError(t, err)
	assert.Contains(t, out, "  target 'MyApp' do\n    use_expo_modules!\n    pod 'A'\n")
}

func TestUpdatePodfile_MissingTarget(t *testing.T) {
	t.Parallel()

	_, err := ios.UpdatePodfile(podfile, "OtherApp")
	assert.True(t, errors.Is(err, gencode.ErrAnchorNotFound))
	assert.Contains(t, err.Error(), "target 'OtherApp' do")
}

func TestAddPods(t *testing.T) {
	t.Parallel()

	result, err := ios.AddPods(podfile, "MyApp", []string{"pod 'Bacon', '~> 1.0'"})
	require.NoError(t, err)
	assert.True(t, result.DidMerge)
	assert.Contains(t, result.Contents, "target 'MyApp' do\n# @generated begin plugmod-pods - ")
	assert.Contains(t, result.Contents, "\n  pod 'Bacon', '~> 1.0'\n# @generated end plugmod-pods\n")

	again, err := ios.AddPods(result.Contents, "MyApp", []string{"pod 'Bacon', '~> 1.0'"})
	require.NoError(t, err)
	assert.False(t, again.DidMerge)
	assert.Equal(t, result.Contents, again.Contents)

	changed, err := ios.AddPods(result.Contents, "MyApp", []string{"pod 'Waffle'"})
	require.NoError(t, err)
	assert.True(t, changed.DidClear)
	assert.NotContains(t, changed.Contents, "Bacon")

	removed, err := ios.AddPods(changed.Contents, "MyApp", nil)
	require.NoError(t, err)
	assert.True(t, removed.DidClear)
	assert.Equal(t, podfile, removed.Contents)
}
