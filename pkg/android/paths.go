package android

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/fsutil"
	"github.com/yaklabco/plugmod/pkg/langdetect"
)

// ErrSourceNotFound is returned when no source file matches.
var ErrSourceNotFound = errors.New("android source file not found")

// Project-relative locations inside the android/ directory.
const (
	ManifestRelPath         = "app/src/main/AndroidManifest.xml"
	StringsRelPath          = "app/src/main/res/values/strings.xml"
	ProjectBuildGradleRel   = "build.gradle"
	AppBuildGradleRel       = "app/build.gradle"
	GoogleServicesFileRel   = "app/google-services.json"
	sourceRoot              = "app/src/main/java"
	sourceExtensionsPattern = ".{java,kt}"
)

// ManifestPath returns the AndroidManifest.xml path under androidRoot.
func ManifestPath(androidRoot string) string {
	return filepath.Join(androidRoot, filepath.FromSlash(ManifestRelPath))
}

// StringsPath returns the default strings.xml path under androidRoot.
func StringsPath(androidRoot string) string {
	return filepath.Join(androidRoot, filepath.FromSlash(StringsRelPath))
}

// ProjectBuildGradlePath returns the top-level build.gradle path.
func ProjectBuildGradlePath(androidRoot string) string {
	return filepath.Join(androidRoot, ProjectBuildGradleRel)
}

// AppBuildGradlePath returns the app module build.gradle path.
func AppBuildGradlePath(androidRoot string) string {
	return filepath.Join(androidRoot, filepath.FromSlash(AppBuildGradleRel))
}

// GoogleServicesFilePath returns where google-services.json is copied to.
func GoogleServicesFilePath(androidRoot string) string {
	return filepath.Join(androidRoot, filepath.FromSlash(GoogleServicesFileRel))
}

// SourceFile is a located Java or Kotlin source.
type SourceFile struct {
	Path     string
	Language codemod.Language
}

// FindSourceFile finds the source declaring the named class, such as
// MainActivity, anywhere under app/src/main/java. Candidates are sorted so
// the result is stable.
func FindSourceFile(ctx context.Context, androidRoot, className string) (SourceFile, error) {
	pattern := sourceRoot + "/**/" + className + sourceExtensionsPattern
	matches, err := doublestar.Glob(os.DirFS(androidRoot), pattern, doublestar.WithFilesOnly())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SourceFile{}, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return SourceFile{}, fmt.Errorf("%w: %s in %s", ErrSourceNotFound, className, filepath.Join(androidRoot, sourceRoot))
	}
	slices.Sort(matches)

	path := filepath.Join(androidRoot, filepath.FromSlash(matches[0]))
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return SourceFile{}, err
	}
	lang, err := langdetect.Detect(path, content)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{Path: path, Language: lang}, nil
}
