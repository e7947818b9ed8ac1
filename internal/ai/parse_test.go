package ai

import (
	"reflect"
	"testing"
)

func TestStripCodeBlock(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\nplain\n```", "plain"},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"no fences", "no fences"},
	}
	for _, c := range cases {
		if got := stripCodeBlock(c.in); got != c.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSONObject_MixedText(t *testing.T) {
	in := "Here is the result:\n{\"score\": 5}\nHope it helps."
	if got := extractJSONObject(in); got != `{"score": 5}` {
		t.Errorf("got %q", got)
	}
	if got := extractJSONObject("nothing here"); got != "" {
		t.Errorf("expected empty for text without object, got %q", got)
	}
}

func TestSplitLines_CleansBulletsAndNumbers(t *testing.T) {
	in := "- first\n* second\n3. third\n\n  4) fourth  \n"
	want := []string{"first", "second", "third", "fourth"}
	if got := splitLines(in); !reflect.DeepEqual(got, want) {
		t.Errorf("splitLines = %v, want %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("got %q", got)
	}
}
