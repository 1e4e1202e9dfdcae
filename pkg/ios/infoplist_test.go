package ios_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/yaklabco/plugmod/pkg/ios"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDisplayName</key>
	<string>Old</string>
	<key>UIBackgroundModes</key>
	<array>
		<string>audio</string>
	</array>
</dict>
</plist>
`

func TestInfoPlistRoundTrip(t *testing.T) {
	t.Parallel()

	values, format, err := ios.ParseInfoPlist([]byte(infoPlist))
	require.NoError(t, err)
	assert.Equal(t, plist.XMLFormat, format)
	assert.Equal(t, "Old", values["CFBundleDisplayName"])

	updated := ios.SetInfoPlistValues(values, ios.InfoPlist{
		"CFBundleDisplayName":  "Bacon",
		"UIRequiresFullScreen": true,
	})
	assert.Equal(t, "Old", values["CFBundleDisplayName"], "input must not change")

	data, err := ios.FormatInfoPlist(updated, format)
	require.NoError(t, err)

	parsed, _, err := ios.ParseInfoPlist(data)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(map[string]any(updated), map[string]any(parsed)))
}

func TestParseInfoPlist_Malformed(t *testing.T) {
	t.Parallel()

	_, _, err := ios.ParseInfoPlist([]byte("<plist><dict><key>a</key><string>b</dict></plist>"))
	assert.Error(t, err)
}

func TestInfoPlistClone(t *testing.T) {
	t.Parallel()

	original := ios.InfoPlist{
		"NSAppTransportSecurity": map[string]any{"NSAllowsArbitraryLoads": true},
		"UIBackgroundModes":      []any{"audio"},
	}
	clone := original.Clone()
	clone["NSAppTransportSecurity"].(map[string]any)["NSAllowsArbitraryLoads"] = false
	clone["UIBackgroundModes"].([]any)[0] = "fetch"

	assert.Equal(t, true, original["NSAppTransportSecurity"].(map[string]any)["NSAllowsArbitraryLoads"])
	assert.Equal(t, "audio", original["UIBackgroundModes"].([]any)[0])
	assert.Nil(t, ios.InfoPlist(nil).Clone())
}
