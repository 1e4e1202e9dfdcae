package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected codemod.Language
	}{
		{
			name:     "java extension",
			path:     "MainActivity.java",
			expected: codemod.LanguageJava,
		},
		{
			name:     "kotlin extension",
			path:     "MainActivity.kt",
			expected: codemod.LanguageKotlin,
		},
		{
			name:     "swift extension",
			path:     "AppDelegate.swift",
			expected: codemod.LanguageSwift,
		},
		{
			name:     "java content",
			path:     "MainActivity",
			content:  "package com.app;\n\npublic class MainActivity extends ReactActivity {\n  protected String getMainComponentName() {\n    return \"main\";\n  }\n}\n",
			expected: codemod.LanguageJava,
		},
		{
			name:     "kotlin content",
			path:     "MainActivity",
			content:  "package com.app\n\nclass MainActivity : ReactActivity() {\n  override fun getMainComponentName(): String = \"main\"\n}\n",
			expected: codemod.LanguageKotlin,
		},
		{
			name:     "objective-c content",
			path:     "AppDelegate",
			content:  "#import \"AppDelegate.h\"\n\n@implementation AppDelegate\n@end\n",
			expected: codemod.LanguageObjC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := langdetect.Detect(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	t.Parallel()

	_, err := langdetect.Detect("README", nil)
	assert.Error(t, err)
}
