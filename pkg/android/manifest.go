// Package android holds the Android native-project helpers built on the
// merge primitives: AndroidManifest.xml, strings.xml, Gradle files and the
// MainActivity/MainApplication sources.
package android

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

// ErrMissingElement is returned when a required manifest element is absent.
var ErrMissingElement = errors.New("manifest element not found")

const (
	attrName       = "android:name"
	metaDataTag    = "meta-data"
	permissionTag  = "uses-permission"
	mainActivity   = ".MainActivity"
	actionMain     = "android.intent.action.MAIN"
	categoryLaunch = "android.intent.category.LAUNCHER"
)

// MainApplication returns the <application> element of the manifest.
func MainApplication(doc *etree.Document) (*etree.Element, error) {
	if root := doc.Root(); root != nil {
		if app := root.SelectElement("application"); app != nil {
			return app, nil
		}
	}
	return nil, fmt.Errorf("%w: <application>", ErrMissingElement)
}

// MainActivity returns the launcher activity: the one named .MainActivity, or
// else the first with a MAIN/LAUNCHER intent filter.
func MainActivity(doc *etree.Document) (*etree.Element, error) {
	app, err := MainApplication(doc)
	if err != nil {
		return nil, err
	}

	activities := app.SelectElements("activity")
	for _, activity := range activities {
		if activity.SelectAttrValue(attrName, "") == mainActivity {
			return activity, nil
		}
	}
	for _, activity := range activities {
		if isLauncher(activity) {
			return activity, nil
		}
	}
	return nil, fmt.Errorf("%w: main <activity>", ErrMissingElement)
}

func isLauncher(activity *etree.Element) bool {
	for _, filter := range activity.SelectElements("intent-filter") {
		if hasNamedChild(filter, "action", actionMain) && hasNamedChild(filter, "category", categoryLaunch) {
			return true
		}
	}
	return false
}

func hasNamedChild(el *etree.Element, tag, name string) bool {
	for _, child := range el.SelectElements(tag) {
		if child.SelectAttrValue(attrName, "") == name {
			return true
		}
	}
	return false
}

// FindMetaDataItem returns the index of the named item among the meta-data
// children of app, or -1.
func FindMetaDataItem(app *etree.Element, name string) int {
	for i, item := range app.SelectElements(metaDataTag) {
		if item.SelectAttrValue(attrName, "") == name {
			return i
		}
	}
	return -1
}

// MetaDataValue returns the android:value (or android:resource) of a
// meta-data item.
func MetaDataValue(app *etree.Element, name string) (string, bool) {
	idx := FindMetaDataItem(app, name)
	if idx < 0 {
		return "", false
	}
	item := app.SelectElements(metaDataTag)[idx]
	for _, key := range []string{"android:value", "android:resource"} {
		if attr := item.SelectAttr(key); attr != nil {
			return attr.Value, true
		}
	}
	return "", false
}

// AddMetaDataItemToMainApplication sets a meta-data item on app, updating the
// existing item of that name in place. itemType is "value" or "resource";
// empty means "value".
func AddMetaDataItemToMainApplication(app *etree.Element, name, value, itemType string) {
	if itemType == "" {
		itemType = "value"
	}
	key := "android:" + itemType

	if idx := FindMetaDataItem(app, name); idx >= 0 {
		app.SelectElements(metaDataTag)[idx].CreateAttr(key, value)
		return
	}

	item := app.CreateElement(metaDataTag)
	item.CreateAttr(attrName, name)
	item.CreateAttr(key, value)
}

// RemoveMetaDataItemFromMainApplication removes the named item and reports
// whether it existed.
func RemoveMetaDataItemFromMainApplication(app *etree.Element, name string) bool {
	idx := FindMetaDataItem(app, name)
	if idx < 0 {
		return false
	}
	app.RemoveChild(app.SelectElements(metaDataTag)[idx])
	return true
}

// PrefixAndroidKeys prefixes every key with the android namespace.
func PrefixAndroidKeys(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for key, value := range attrs {
		out["android:"+key] = value
	}
	return out
}

// PermissionsShape returns the manifest shape adding every permission in
// add and removing every permission in remove.
func PermissionsShape(add, remove []string) xmlmerge.Expected {
	children := make([]xmlmerge.Expected, 0, len(add)+len(remove))
	for _, name := range add {
		if slices.Contains(remove, name) {
			continue
		}
		children = append(children, permissionShape(name))
	}
	for _, name := range remove {
		children = append(children, permissionShape(name).Delete())
	}
	return xmlmerge.Element("manifest", nil, children...)
}

func permissionShape(name string) xmlmerge.Expected {
	return xmlmerge.Element(permissionTag, xmlmerge.Attrs{attrName: xmlmerge.Lit(name)}).Match(attrName)
}

// Permissions lists the uses-permission names declared by the manifest.
func Permissions(doc *etree.Document) []string {
	root := doc.Root()
	if root == nil {
		return nil
	}
	var names []string
	for _, perm := range root.SelectElements(permissionTag) {
		names = append(names, perm.SelectAttrValue(attrName, ""))
	}
	return names
}

// MetaDataShape returns the manifest shape setting every item of values on
// the main application. Values replace existing ones.
func MetaDataShape(values map[string]string) xmlmerge.Expected {
	children := make([]xmlmerge.Expected, 0, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		children = append(children, xmlmerge.Element(metaDataTag, xmlmerge.Attrs{
			attrName:        xmlmerge.Lit(name),
			"android:value": xmlmerge.NewValue(values[name]),
		}))
	}
	return xmlmerge.Element("manifest", nil, xmlmerge.Element("application", nil, children...))
}
