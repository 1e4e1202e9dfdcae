package android

import (
	"regexp"

	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/fix"
)

//nolint:gochecknoglobals // Read-only.
var mainApplicationImports = []string{
	"android.content.res.Configuration",
	"androidx.annotation.NonNull",
	"expo.modules.ApplicationLifecycleDispatcher",
	"expo.modules.ReactNativeHostWrapper",
}

//nolint:gochecknoglobals // Compiled once.
var (
	lifecycleOnCreate = regexp.MustCompile(`\s+ApplicationLifecycleDispatcher\.onApplicationCreate\(this\);?`)
	lifecycleOnConfig = regexp.MustCompile(`\s+onConfigurationChanged\([\s\S]+ApplicationLifecycleDispatcher\.onConfigurationChanged\(this, newConfig\);?`)
	hostWrapperCall   = regexp.MustCompile(`\bReactNativeHostWrapper\s*\(`)
)

const mainApplicationDecl = `class MainApplication\b`

// hostClasses are the host types React Native templates instantiate.
//
//nolint:gochecknoglobals // Read-only.
var hostClasses = []string{"ReactNativeHost", "DefaultReactNativeHost"}

type applicationSnippets struct {
	onCreateDecl string
	onCreate     string
	onConfig     string
	hostWrapper  string
}

//nolint:gochecknoglobals // Read-only.
var (
	javaApplication = applicationSnippets{
		onCreateDecl: `void onCreate\(`,
		onCreate:     "  ApplicationLifecycleDispatcher.onApplicationCreate(this);\n  ",
		onConfig: `
  @Override
  public void onConfigurationChanged(@NonNull Configuration newConfig) {
    super.onConfigurationChanged(newConfig);
    ApplicationLifecycleDispatcher.onConfigurationChanged(this, newConfig);
  }
`,
		hostWrapper: "new ReactNativeHostWrapper(this, ",
	}
	kotlinApplication = applicationSnippets{
		onCreateDecl: `fun onCreate\(`,
		onCreate:     "  ApplicationLifecycleDispatcher.onApplicationCreate(this)\n  ",
		onConfig: `
  override fun onConfigurationChanged(newConfig: Configuration) {
    super.onConfigurationChanged(newConfig)
    ApplicationLifecycleDispatcher.onConfigurationChanged(this, newConfig)
  }
`,
		hostWrapper: "ReactNativeHostWrapper(this, ",
	}
)

// SetModulesMainApplication wires Expo modules into MainApplication: lifecycle
// dispatch from onCreate and onConfigurationChanged, and the ReactNativeHost
// wrapped in ReactNativeHostWrapper. Every step is skipped when already done.
// The edits are located in one buffer and applied together, so overlapping
// locations fail with a fix.ConflictError.
func SetModulesMainApplication(src string, lang codemod.Language) (string, error) {
	snippets := kotlinApplication
	if lang.IsJava() {
		snippets = javaApplication
	}
	imports := mainApplicationImports
	if !lang.IsJava() {
		imports = []string{mainApplicationImports[0], mainApplicationImports[2], mainApplicationImports[3]}
	}

	out := codemod.AddImports(src, imports, lang.IsJava())
	edits := fix.NewEditBuilder()

	if !lifecycleOnCreate.MatchString(out) {
		end, err := codemod.FindDeclarationBlockEnd(out, snippets.onCreateDecl)
		if err != nil {
			return "", err
		}
		edits.Insert(end, snippets.onCreate)
	}

	if !lifecycleOnConfig.MatchString(out) {
		end, err := codemod.FindDeclarationBlockEnd(out, mainApplicationDecl)
		if err != nil {
			return "", err
		}
		edits.Insert(end, snippets.onConfig)
	}

	if !hostWrapperCall.MatchString(out) {
		block, err := findHostBlock(out, lang)
		if err != nil {
			return "", err
		}
		edits.ReplaceRange(block.Start, block.End+1, snippets.hostWrapper+block.Code+")")
	}

	if edits.Len() == 0 {
		return out, nil
	}
	return edits.Apply(out)
}

func findHostBlock(src string, lang codemod.Language) (*codemod.CodeBlock, error) {
	var firstErr error
	for _, class := range hostClasses {
		block, err := codemod.FindNewInstanceCodeBlock(src, class, lang)
		if err == nil {
			return block, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
