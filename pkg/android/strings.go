package android

import (
	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

// SetStringItem sets the <string name=...> resource to value and reports
// whether the document changed.
func SetStringItem(doc *etree.Document, name, value string) (bool, error) {
	shape := xmlmerge.Element("resources", nil,
		stringShape(name, xmlmerge.Text(xmlmerge.EscapeAndroidString(value))),
	)
	return xmlmerge.MergeDocument(doc, shape, xmlmerge.MergeOptions{})
}

// RemoveStringItem removes the named string resource.
func RemoveStringItem(doc *etree.Document, name string) (bool, error) {
	shape := xmlmerge.Element("resources", nil, stringShape(name).Delete())
	return xmlmerge.MergeDocument(doc, shape, xmlmerge.MergeOptions{})
}

// StringItem returns the unescaped value of the named string resource.
func StringItem(doc *etree.Document, name string) (string, bool) {
	root := doc.Root()
	if root == nil {
		return "", false
	}
	for _, item := range root.SelectElements("string") {
		if item.SelectAttrValue("name", "") == name {
			return xmlmerge.UnescapeAndroidString(item.Text()), true
		}
	}
	return "", false
}

func stringShape(name string, children ...xmlmerge.Expected) xmlmerge.Expected {
	return xmlmerge.Element("string", xmlmerge.Attrs{"name": xmlmerge.Lit(name)}, children...).Match("name")
}
