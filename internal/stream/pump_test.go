package stream

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/barpad/internal/spacer"
)

func newSpacer(t *testing.T, width int) *spacer.Spacer {
	t.Helper()
	sp, err := spacer.New(spacer.Options{Width: width})
	require.NoError(t, err)
	return sp
}

func TestRunTransformsMarkedLines(t *testing.T) {
	in := strings.Join([]string{
		`{"version": 1}`,
		`[`,
		`x"full_text":"1","full_text"<<>>,"full_text":"2"`,
		`plain line`,
	}, "\n") + "\n"

	var out bytes.Buffer
	p := New(newSpacer(t, 10), strings.NewReader(in), &out)
	require.NoError(t, p.Run(context.Background()))

	want := strings.Join([]string{
		`{"version": 1}`,
		`[`,
		`x"full_text":"1","full_text"||||,"full_text":"2"`,
		`plain line`,
	}, "\n") + "\n"
	assert.Equal(t, want, out.String(), "unmarked lines pass through, marked lines are padded, order is preserved")
}

func TestRunEmptyInput(t *testing.T) {
	var out bytes.Buffer
	p := New(newSpacer(t, 10), strings.NewReader(""), &out)
	require.NoError(t, p.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestRunReportsLineNumberOnMalformedLine(t *testing.T) {
	in := strings.Join([]string{
		`ok line`,
		`marker without label <<>>`,
		`never reached`,
	}, "\n") + "\n"

	var out bytes.Buffer
	p := New(newSpacer(t, 10), strings.NewReader(in), &out)
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, spacer.ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2")

	// Lines before the failure were already flushed.
	assert.Equal(t, "ok line\n", out.String())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("pipe broke")
}

func TestRunSurfacesReadErrors(t *testing.T) {
	var out bytes.Buffer
	p := New(newSpacer(t, 10), failingReader{}, &out)
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestRunHandlesMissingTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	p := New(newSpacer(t, 10), strings.NewReader("last line"), &out)
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, "last line\n", out.String())
}
