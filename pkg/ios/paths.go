package ios

import "path/filepath"

// PodfilePath returns the Podfile under iosRoot.
func PodfilePath(iosRoot string) string {
	return filepath.Join(iosRoot, "Podfile")
}

// InfoPlistPath returns the app Info.plist under iosRoot.
func InfoPlistPath(iosRoot, projectName string) string {
	return filepath.Join(iosRoot, projectName, "Info.plist")
}

// GoogleServicesFilePath returns where GoogleService-Info.plist is copied to.
func GoogleServicesFilePath(iosRoot, projectName string) string {
	return filepath.Join(iosRoot, projectName, "GoogleService-Info.plist")
}
