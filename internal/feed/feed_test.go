package feed

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func drain(t *testing.T, s Source) []uint {
	t.Helper()
	var ids []uint
	for {
		id, err := s.Next()
		if errors.Is(err, io.EOF) {
			return ids
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		ids = append(ids, id)
	}
}

func TestJSONFeed(t *testing.T) {
	input := `{"id": 12, "payload": "a"}
{"id": 13}

{"id": 99}
`
	f := NewJSON(strings.NewReader(input), "")

	ids := drain(t, f)
	want := []uint{12, 13, 99}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("record %d: expected %d, got %d", i, want[i], ids[i])
		}
	}
	if f.Skipped() != 0 {
		t.Errorf("expected no skipped records, got %d", f.Skipped())
	}
}

func TestJSONFeedNestedPath(t *testing.T) {
	input := `{"header": {"vector": 42}}
`
	f := NewJSON(strings.NewReader(input), "header.vector")

	ids := drain(t, f)
	if len(ids) != 1 || ids[0] != 42 {
		t.Errorf("expected [42], got %v", ids)
	}
}

func TestJSONFeedSkipsMalformed(t *testing.T) {
	input := `{"id": 12}
not json at all
{"noid": true}
{"id": "twelve"}
{"id": -4}
{"id": 1.5}
{"id": 13}
`
	f := NewJSON(strings.NewReader(input), "")

	ids := drain(t, f)
	if len(ids) != 2 || ids[0] != 12 || ids[1] != 13 {
		t.Errorf("expected [12 13], got %v", ids)
	}
	if f.Skipped() != 5 {
		t.Errorf("expected 5 skipped records, got %d", f.Skipped())
	}
}

func TestLinesFeed(t *testing.T) {
	input := `12
# timer burst
13

99
`
	f := NewLines(strings.NewReader(input))

	ids := drain(t, f)
	want := []uint{12, 13, 99}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	if f.Skipped() != 0 {
		t.Errorf("expected no skipped lines, got %d", f.Skipped())
	}
}

func TestLinesFeedSkipsMalformed(t *testing.T) {
	input := `12
twelve
-4
13
`
	f := NewLines(strings.NewReader(input))

	ids := drain(t, f)
	if len(ids) != 2 || ids[0] != 12 || ids[1] != 13 {
		t.Errorf("expected [12 13], got %v", ids)
	}
	if f.Skipped() != 2 {
		t.Errorf("expected 2 skipped lines, got %d", f.Skipped())
	}
}

func TestEmptyFeeds(t *testing.T) {
	if ids := drain(t, NewJSON(strings.NewReader(""), "")); len(ids) != 0 {
		t.Errorf("expected empty JSON feed, got %v", ids)
	}
	if ids := drain(t, NewLines(strings.NewReader(""))); len(ids) != 0 {
		t.Errorf("expected empty lines feed, got %v", ids)
	}
}
