package android

import (
	"regexp"

	"github.com/yaklabco/plugmod/pkg/codemod"
)

const (
	importDelegate        = "com.facebook.react.ReactActivityDelegate"
	importDelegateWrapper = "expo.modules.ReactActivityDelegateWrapper"
)

//nolint:gochecknoglobals // Compiled once.
var (
	delegateWrapperCall = regexp.MustCompile(`\bReactActivityDelegateWrapper\s*\(`)
	delegateOverride    = regexp.MustCompile(`\s+createReactActivityDelegate\s*\(\)`)
)

const javaDelegateOverride = `
  @Override
  protected ReactActivityDelegate createReactActivityDelegate() {
    return new ReactActivityDelegateWrapper(this,
      new ReactActivityDelegate(this, getMainComponentName())
    );
  }
`

const kotlinDelegateOverride = `
  override fun createReactActivityDelegate(): ReactActivityDelegate {
    return ReactActivityDelegateWrapper(this,
      ReactActivityDelegate(this, getMainComponentName())
    )
  }
`

// SetModulesMainActivity wraps the activity's ReactActivityDelegate in the
// Expo modules wrapper, adding a createReactActivityDelegate override when the
// activity has none. Already-wrapped sources are returned unchanged.
func SetModulesMainActivity(src string, lang codemod.Language) (string, error) {
	if delegateWrapperCall.MatchString(src) {
		return src, nil
	}
	isJava := lang.IsJava()

	if !delegateOverride.MatchString(src) {
		override := kotlinDelegateOverride
		if isJava {
			override = javaDelegateOverride
		}
		out, err := codemod.AppendContentsInsideDeclarationBlock(src, `class MainActivity\b`, override)
		if err != nil {
			return "", err
		}
		return codemod.AddImports(out, []string{importDelegate, importDelegateWrapper}, isJava), nil
	}

	block, err := codemod.FindNewInstanceCodeBlock(src, "ReactActivityDelegate", lang)
	if err != nil {
		return "", err
	}
	wrapper := "ReactActivityDelegateWrapper(this, " + block.Code + ")"
	if isJava {
		wrapper = "new " + wrapper
	}
	out, err := codemod.ReplaceContentsWithOffset(src, wrapper, block.Start, block.End)
	if err != nil {
		return "", err
	}
	return codemod.AddImports(out, []string{importDelegateWrapper}, isJava), nil
}
