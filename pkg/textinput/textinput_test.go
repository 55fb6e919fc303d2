package textinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_StartsEmptyWithCursorAtOrigin(t *testing.T) {
	b := New()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Cursor{0, 0}, b.Cursor())
}

func TestSetText_SplitsOnNewlines(t *testing.T) {
	b := New()
	b.SetText("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, b.Lines())
	assert.Equal(t, "a\nb\nc", b.Text())
	assert.Equal(t, Cursor{0, 0}, b.Cursor())
}

func TestInsertChar_MovesCursorRight(t *testing.T) {
	b := New()
	b.InsertChar('a')
	b.InsertChar('b')
	assert.Equal(t, "ab", b.Lines()[0])
	assert.Equal(t, Cursor{0, 2}, b.Cursor())
}

func TestInsertNewline_SplitsAtCursor(t *testing.T) {
	b := New()
	b.SetText("aa b;c asdf asdf")
	b.MoveCursor(MoveRight, 0)
	b.MoveCursor(MoveRight, 0)
	b.MoveCursor(MoveRight, 0)
	assert.Equal(t, Cursor{0, 3}, b.Cursor())

	b.InsertNewline()
	assert.Equal(t, []string{"aa ", "b;c asdf asdf"}, b.Lines())
	assert.Equal(t, Cursor{1, 0}, b.Cursor())
}

func TestInsertNewline_Unicode(t *testing.T) {
	b := New()
	b.SetText("äaä b;ö üü")
	for i := 0; i < 3; i++ {
		b.MoveCursor(MoveRight, 0)
	}
	assert.Equal(t, Cursor{0, 3}, b.Cursor())

	b.InsertNewline()
	assert.Equal(t, []string{"äaä", " b;ö üü"}, b.Lines())
	assert.Equal(t, Cursor{1, 0}, b.Cursor())
}

func TestDeleteBackward_Unicode(t *testing.T) {
	b := New()
	b.SetText("äÜö")
	b.MoveCursor(MoveEnd, 0)
	assert.Equal(t, Cursor{0, 3}, b.Cursor())

	b.DeleteBackward()
	assert.Equal(t, []string{"äÜ"}, b.Lines())
	assert.Equal(t, Cursor{0, 2}, b.Cursor())
}

func TestDeleteBackward_JoinsWithPreviousLine(t *testing.T) {
	b := New()
	b.SetText("aasd\nfdfsd\nölkj")
	b.MoveCursor(MoveBottom, 0)
	assert.Equal(t, Cursor{2, 0}, b.Cursor())

	b.DeleteBackward()
	assert.Equal(t, []string{"aasd", "fdfsdölkj"}, b.Lines())
	assert.Equal(t, Cursor{1, 5}, b.Cursor())
}

func TestDeleteBackward_AtOriginIsNoop(t *testing.T) {
	b := New()
	b.SetText("abc")
	b.DeleteBackward()
	assert.Equal(t, []string{"abc"}, b.Lines())
	assert.Equal(t, Cursor{0, 0}, b.Cursor())
}

func TestDeleteForward_JoinsWithNextLine(t *testing.T) {
	b := New()
	b.SetText("aa\ndef sa\ngitui")
	b.DeleteForward()
	b.DeleteForward()
	b.DeleteForward()
	assert.Equal(t, []string{"def sa", "gitui"}, b.Lines())
	assert.Equal(t, Cursor{0, 0}, b.Cursor())

	b.MoveCursor(MoveDown, 0)
	b.DeleteForward()
	assert.Equal(t, []string{"def sa", "itui"}, b.Lines())
}

func TestDeleteForward_AtEndOfBufferIsNoop(t *testing.T) {
	b := New()
	b.DeleteForward()
	assert.Equal(t, []string{""}, b.Lines())
	assert.Equal(t, Cursor{0, 0}, b.Cursor())
}

func TestDeleteForward_Unicode(t *testing.T) {
	b := New()
	b.SetText("üäu")
	b.MoveCursor(MoveRight, 0)
	assert.Equal(t, Cursor{0, 1}, b.Cursor())

	b.DeleteForward()
	assert.Equal(t, []string{"üu"}, b.Lines())
	assert.Equal(t, Cursor{0, 1}, b.Cursor())
}

func TestMoveCursor_Horizontal(t *testing.T) {
	b := New()
	b.SetText("aa b;c")

	b.MoveCursor(MoveHome, 0)
	assert.Equal(t, Cursor{0, 0}, b.Cursor())

	b.MoveCursor(MoveRight, 0)
	b.MoveCursor(MoveRight, 0)
	assert.Equal(t, Cursor{0, 2}, b.Cursor())

	b.MoveCursor(MoveEnd, 0)
	assert.Equal(t, Cursor{0, 6}, b.Cursor())

	b.MoveCursor(MoveLeft, 0)
	b.MoveCursor(MoveLeft, 0)
	assert.Equal(t, Cursor{0, 4}, b.Cursor())
}

func TestMoveCursor_Vertical(t *testing.T) {
	b := New()
	b.SetText("aa \nd\ngitui")

	b.MoveCursor(MoveBottom, 0)
	assert.Equal(t, Cursor{2, 0}, b.Cursor())

	b.MoveCursor(MoveUp, 0)
	assert.Equal(t, Cursor{1, 0}, b.Cursor())

	b.MoveCursor(MoveUp, 0)
	assert.Equal(t, Cursor{0, 0}, b.Cursor())

	b.MoveCursor(MoveEnd, 0)
	b.MoveCursor(MoveDown, 0)
	assert.Equal(t, Cursor{1, 1}, b.Cursor())
}

func TestMoveCursor_PageUpDown(t *testing.T) {
	b := New()
	b.SetText("aa \nd\ngitui\nasdf\ndf\ndfsdf\nsdfsdfsdfsdf")

	b.MoveCursor(MovePageDown, 5)
	assert.Equal(t, 5, b.Cursor().Row)

	b.MoveCursor(MovePageUp, 5)
	assert.Equal(t, 0, b.Cursor().Row)
}

func TestMoveCursor_ClampsOnShorterLine(t *testing.T) {
	b := New()
	b.SetText("gitui\nd")

	b.MoveCursor(MoveEnd, 0)
	assert.Equal(t, Cursor{0, 5}, b.Cursor())

	b.MoveCursor(MoveDown, 0)
	assert.Equal(t, Cursor{1, 1}, b.Cursor())
}

func TestScroll_SlidesMinimallyToKeepCursorVisible(t *testing.T) {
	b := New()
	b.SetText("l0\nl1\nl2\nl3\nl4\nl5\nl6")

	assert.Equal(t, 0, b.Scroll(3))

	b.cursor.Row = 5
	assert.Equal(t, 3, b.Scroll(3))

	b.cursor.Row = 0
	assert.Equal(t, 0, b.Scroll(3))
}

func TestRenderLine_MasksWhenConfigured(t *testing.T) {
	b := New()
	b.SetText("päss")
	b.MaskRune = '*'
	assert.Equal(t, "****", b.RenderLine(0))
}

func TestRenderLine_UnmaskedByDefault(t *testing.T) {
	b := New()
	b.SetText("hello")
	assert.Equal(t, "hello", b.RenderLine(0))
}

func TestIsEmpty_OnlyTrueForSingleEmptyLine(t *testing.T) {
	b := New()
	assert.True(t, b.IsEmpty())

	b.InsertChar('a')
	assert.False(t, b.IsEmpty())

	b.DeleteBackward()
	assert.True(t, b.IsEmpty())

	b.SetText("a\n")
	assert.False(t, b.IsEmpty())
}

func TestRoundTrip_InsertingBuildsExactString(t *testing.T) {
	s := "the quick brown füx"
	b := New()
	for _, r := range s {
		b.InsertChar(r)
	}
	assert.Equal(t, s, b.Text())
}
