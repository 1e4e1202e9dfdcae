package fix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/fix"
)

func TestInsertAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buffer    string
		insertion string
		offset    int
		want      string
		wantErr   bool
	}{
		{name: "start", buffer: "world", insertion: "hello ", offset: 0, want: "hello world"},
		{name: "middle", buffer: "ac", insertion: "b", offset: 1, want: "abc"},
		{name: "end", buffer: "hello", insertion: " world", offset: 5, want: "hello world"},
		{name: "empty buffer", buffer: "", insertion: "x", offset: 0, want: "x"},
		{name: "negative offset", buffer: "abc", insertion: "x", offset: -1, wantErr: true},
		{name: "past end", buffer: "abc", insertion: "x", offset: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fix.InsertAt(tt.buffer, tt.insertion, tt.offset)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, fix.ErrInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		buffer      string
		replacement string
		start, end  int
		want        string
		wantErr     bool
	}{
		{name: "single byte", buffer: "abc", replacement: "X", start: 1, end: 1, want: "aXc"},
		{name: "inclusive end", buffer: "hello world", replacement: "hi", start: 0, end: 4, want: "hi world"},
		{name: "last byte", buffer: "abc", replacement: "Z", start: 2, end: 2, want: "abZ"},
		{name: "whole buffer", buffer: "abc", replacement: "", start: 0, end: 2, want: ""},
		{name: "end equals length", buffer: "abc", replacement: "x", start: 0, end: 3, wantErr: true},
		{name: "start after end", buffer: "abc", replacement: "x", start: 2, end: 1, wantErr: true},
		{name: "negative start", buffer: "abc", replacement: "x", start: -1, end: 1, wantErr: true},
		{name: "empty buffer", buffer: "", replacement: "x", start: 0, end: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fix.ReplaceRange(tt.buffer, tt.replacement, tt.start, tt.end)
			if tt.wantErr {
				var rangeErr *fix.InvalidRangeError
				require.ErrorAs(t, err, &rangeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceRange_MatchesSlicing(t *testing.T) {
	t.Parallel()

	buffer := "public class MainActivity {}"
	for start := 0; start < len(buffer); start++ {
		for end := start; end < len(buffer); end++ {
			got, err := fix.ReplaceRange(buffer, "<>", start, end)
			require.NoError(t, err)
			assert.Equal(t, buffer[:start]+"<>"+buffer[end+1:], got)
		}
	}
}

func TestInsertThenReplace_RoundTrip(t *testing.T) {
	t.Parallel()

	buffer := "new ReactActivityDelegate(this)"
	start, end := 4, 24

	inserted, err := fix.InsertAt(buffer, "Wrapper", end+1)
	require.NoError(t, err)

	replaced, err := fix.ReplaceRange(inserted, "Delegate", start, end+len("Wrapper"))
	require.NoError(t, err)

	assert.Equal(t, buffer[:start]+"Delegate"+buffer[end+1:], replaced)
}

func TestInsertAt_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	buffer := "abc"
	_, err := fix.InsertAt(buffer, "x", 1)
	require.NoError(t, err)
	assert.Equal(t, "abc", buffer)
}
