package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/bankfile-service/pkg/diag"
)

type testCtx struct {
	value string
}

func template(name string, fields ...func(testCtx) string) *Template[testCtx] {
	return &Template[testCtx]{Name: name, Fields: fields}
}

func TestEmit_JoinsRecordsWithSeparator(t *testing.T) {
	tpl := template("row", func(c testCtx) string { return c.value })
	spec := Spec{RecordLength: 4, Separator: "\r\n"}

	out, err := Emit(spec, []Line[testCtx]{
		{Template: tpl, Ctx: testCtx{value: "AAAA"}},
		{Template: tpl, Ctx: testCtx{value: "BBBB"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAAA\r\nBBBB\r\n", string(out))
}

// TestEmit_WrongLengthAborts verifies the engine invariant: a record that
// does not match the format's fixed width is a composer bug and emission
// stops with a diagnostic naming the template.
func TestEmit_WrongLengthAborts(t *testing.T) {
	good := template("good", Lit[testCtx]("AAAA"))
	bad := template("bad record", Lit[testCtx]("TOO LONG"))
	spec := Spec{RecordLength: 4, Separator: "\n"}

	_, err := Emit(spec, []Line[testCtx]{
		{Template: good, Ctx: testCtx{}},
		{Template: bad, Ctx: testCtx{}},
	})
	require.Error(t, err)

	var inv *diag.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "bad record", inv.Template)
	assert.Equal(t, 1, inv.Index)
	assert.Equal(t, 8, inv.Got)
	assert.Equal(t, 4, inv.Want)
}

func TestEmit_BlockPadding(t *testing.T) {
	tpl := template("row", Lit[testCtx]("AAAA"))
	spec := Spec{RecordLength: 4, Separator: "\n", BlockFactor: 5, PadLine: "9999"}

	out, err := Emit(spec, []Line[testCtx]{
		{Template: tpl, Ctx: testCtx{}},
		{Template: tpl, Ctx: testCtx{}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, []string{"AAAA", "AAAA", "9999", "9999", "9999"}, lines)
}

// TestRecords_RoundTrip splits emitted bytes back into the records that
// were composed, padding included.
func TestRecords_RoundTrip(t *testing.T) {
	tpl := template("row", func(c testCtx) string { return c.value })
	spec := Spec{RecordLength: 4, Separator: "\r\n", BlockFactor: 4, PadLine: "9999"}

	out, err := Emit(spec, []Line[testCtx]{
		{Template: tpl, Ctx: testCtx{value: "AAAA"}},
		{Template: tpl, Ctx: testCtx{value: "BBBB"}},
	})
	require.NoError(t, err)

	records, err := Records(spec, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAA", "BBBB", "9999", "9999"}, records)
}

func TestRecords_RejectsBadFraming(t *testing.T) {
	spec := Spec{RecordLength: 4, Separator: "\n"}

	_, err := Records(spec, []byte("AAAA\nBBB\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")

	_, err = Records(spec, []byte("AAAA\nBBBB"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing record separator")

	blocked := Spec{RecordLength: 4, Separator: "\n", BlockFactor: 5, PadLine: "9999"}
	_, err = Records(blocked, []byte("AAAA\nBBBB\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocking factor")
}

func TestEmit_NoPaddingWhenAligned(t *testing.T) {
	tpl := template("row", Lit[testCtx]("AAAA"))
	spec := Spec{RecordLength: 4, Separator: "\n", BlockFactor: 2, PadLine: "9999"}

	out, err := Emit(spec, []Line[testCtx]{
		{Template: tpl, Ctx: testCtx{}},
		{Template: tpl, Ctx: testCtx{}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAAA\nAAAA\n", string(out))
}
