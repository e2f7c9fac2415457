package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLineEncoder(t *testing.T) {
	nodes := parseMarkup(t, `<a x=1><b/>"t"</a>`)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(nodes))

	want := "test.rsx:1:1\telement\t/a\t\n" +
		"test.rsx:1:4\tattribute\t/a@x\t1\n" +
		"test.rsx:1:8\telement/\t/a/b\t\n" +
		"test.rsx:1:12\ttext\t/a\t\"t\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLineEncoderTopLevelText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(parseMarkup(t, `{x}`)))
	if got := buf.String(); got != "test.rsx:1:1\tblock\t/\t{x}\n" {
		t.Errorf("output = %q", got)
	}
}
