package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/plugmod/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "always", mode: pretty.ColorAlways, want: true},
		{name: "never", mode: pretty.ColorNever, want: false},
		{name: "auto on non-file writer", mode: pretty.ColorAuto, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf))
		})
	}
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
}

func TestNewStyles_Plain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "text", styles.Error.Render("text"))
	assert.Equal(t, "text", styles.DiffAdd.Render("text"))
	assert.NotNil(t, pretty.NewStyles(true))
}
