package commitpipe

import "testing"

func TestPrettify_StripsCommentLines(t *testing.T) {
	got := Prettify("subject\n\n# comment\nbody\n#also comment\n")
	want := "subject\n\nbody"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettify_TrimsTrailingWhitespace(t *testing.T) {
	got := Prettify("subject  \n\n  \n")
	if got != "subject" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettify_IndentedHashIsStillAComment(t *testing.T) {
	got := Prettify("subject\n  # indented comment\nbody")
	want := "subject\nbody"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
