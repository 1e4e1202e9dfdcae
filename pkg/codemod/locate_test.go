package codemod_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/codemod"
)

func TestFindNewInstanceCodeBlock_Java(t *testing.T) {
	t.Parallel()

	src := `public class MainActivity extends ReactActivity {
  @Override
  protected ReactActivityDelegate createReactActivityDelegate() {
    return new ReactActivityDelegate(this, getMainComponentName());
  }
}
`
	block, err := codemod.FindNewInstanceCodeBlock(src, "ReactActivityDelegate", codemod.LanguageJava)
	require.NoError(t, err)
	assert.Equal(t, "new ReactActivityDelegate(this, getMainComponentName())", block.Code)
	assert.Equal(t, block.Code, src[block.Start:block.End+1])
}

func TestFindNewInstanceCodeBlock_JavaAnonymousClass(t *testing.T) {
	t.Parallel()

	src := `    return new ReactActivityDelegate(this, getMainComponentName()) {
      @Override
      protected ReactRootView createRootView() {
        return new RNGestureHandlerEnabledRootView(MainActivity.this);
      }
    };
`
	block, err := codemod.FindNewInstanceCodeBlock(src, "ReactActivityDelegate", codemod.LanguageJava)
	require.NoError(t, err)
	assert.Equal(t, "new ReactActivityDelegate(", block.Code[:len("new ReactActivityDelegate(")])
	assert.Equal(t, byte('}'), src[block.End])
	assert.Equal(t, ";\n", src[block.End+1:])
}

func TestFindNewInstanceCodeBlock_Kotlin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "constructor call",
			src:  "override fun createReactActivityDelegate(): ReactActivityDelegate = ReactActivityDelegate(this, mainComponentName)\n",
			want: "ReactActivityDelegate(this, mainComponentName)",
		},
		{
			name: "object expression",
			src:  "return object : ReactActivityDelegate(this, name) {\n  val x = 1\n}\n",
			want: "object : ReactActivityDelegate(this, name) {\n  val x = 1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block, err := codemod.FindNewInstanceCodeBlock(tt.src, "ReactActivityDelegate", codemod.LanguageKotlin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, block.Code)
		})
	}
}

func TestFindNewInstanceCodeBlock_SkipsCommentsAndStrings(t *testing.T) {
	t.Parallel()

	src := `// return new Foo(1);
String s = "new Foo(2)";
Foo f = new Foo(3);
`
	block, err := codemod.FindNewInstanceCodeBlock(src, "Foo", codemod.LanguageJava)
	require.NoError(t, err)
	assert.Equal(t, "new Foo(3)", block.Code)
}

func TestFindNewInstanceCodeBlock_Errors(t *testing.T) {
	t.Parallel()

	_, err := codemod.FindNewInstanceCodeBlock("class A {}", "Foo", codemod.LanguageJava)
	assert.True(t, errors.Is(err, codemod.ErrAmbiguousLocator))

	_, err = codemod.FindNewInstanceCodeBlock("x = new Foo(a, b(", "Foo", codemod.LanguageJava)
	var locErr *codemod.AmbiguousLocatorError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, "unbalanced parentheses", locErr.Reason)
}

func TestAppendContentsInsideDeclarationBlock(t *testing.T) {
	t.Parallel()

	src := `public class MainApplication {
  @Override
  public void onCreate() {
    super.onCreate();
    if (x) { y(); }
  }
}
`
	out, err := codemod.AppendContentsInsideDeclarationBlock(src, `public void onCreate`, "  ApplicationLifecycleDispatcher.onApplicationCreate(this);\n  ")
	require.NoError(t, err)
	assert.Equal(t, `public class MainApplication {
  @Override
  public void onCreate() {
    super.onCreate();
    if (x) { y(); }
    ApplicationLifecycleDispatcher.onApplicationCreate(this);
  }
}
`, out)

	_, err = codemod.AppendContentsInsideDeclarationBlock(src, `public void onDestroy`, "x")
	assert.True(t, errors.Is(err, codemod.ErrAmbiguousLocator))

	_, err = codemod.AppendContentsInsideDeclarationBlock(src, `(`, "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, codemod.ErrAmbiguousLocator))
}

func TestFindDeclarationBlockEnd(t *testing.T) {
	t.Parallel()

	src := "class A {\n  // void run() {\n  void run() {\n    go();\n  }\n}\n"

	end, err := codemod.FindDeclarationBlockEnd(src, `void run\(`)
	require.NoError(t, err)
	assert.Equal(t, strings.LastIndex(src, "  }")+2, end)

	end, err = codemod.FindDeclarationBlockEnd(src, `class A\b`)
	require.NoError(t, err)
	assert.Equal(t, len(src)-2, end)

	_, err = codemod.FindDeclarationBlockEnd("void run() {\n", `void run\(`)
	var locErr *codemod.AmbiguousLocatorError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, "unbalanced braces", locErr.Reason)
}
