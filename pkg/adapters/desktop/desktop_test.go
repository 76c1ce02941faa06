package desktop

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Alert("ATIS copied to clipboard.")
	p.Alert("Copy failed: x")
	assert.Equal(t, "ATIS copied to clipboard.\nCopy failed: x\n", buf.String())
}

func TestBrowser_Redirect(t *testing.T) {
	var opened []string
	b := &Browser{open: func(u string) error {
		opened = append(opened, u)
		return nil
	}}
	require.NoError(t, b.Redirect("https://example.org/login"))
	assert.Equal(t, []string{"https://example.org/login"}, opened)

	b = &Browser{open: func(string) error { return errors.New("no browser") }}
	assert.ErrorContains(t, b.Redirect("x"), "no browser")
}
