package textutil

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t ", nil},
		{"single", "Hello world.", []string{"Hello world."}},
		{"no terminal punctuation", "hello world", []string{"hello world"}},
		{"mixed terminators", "One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"whitespace run dropped", "One.  \n Two.", []string{"One.", "Two."}},
		{"punctuation without space", "Version 1.5 shipped. Done.", []string{"Version 1.5 shipped.", "Done."}},
		{"abbreviation splits", "Dr. Smith called.", []string{"Dr.", "Smith called."}},
		{"surrounding whitespace trimmed", "  A. B.  ", []string{"A.", "B."}},
		{"ellipsis", "Wait... What?", []string{"Wait...", "What?"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitSentences(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGroupSentences(t *testing.T) {
	sentences := []string{"A.", "B.", "C.", "D.", "E."}
	got := GroupSentences(sentences, 3)
	want := []string{"A. B. C.", "D. E."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GroupSentences = %#v, want %#v", got, want)
	}

	if got := GroupSentences(nil, 3); got != nil {
		t.Fatalf("expected nil for no sentences, got %#v", got)
	}
	if got := GroupSentences([]string{"A.", "B."}, 0); !reflect.DeepEqual(got, []string{"A.", "B."}) {
		t.Fatalf("expected size<=0 to group singly, got %#v", got)
	}
}
