package ipc

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/bastiangx/anahash/pkg/variant"
)

func TestFrameRoundTrip(t *testing.T) {
	req := BatchRequest{ID: "req_001", Queries: []string{"seperate", "udnerstand"}}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, req); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	var got BatchRequest
	if err := ReadFrame(bufio.NewReader(&buf), &got); err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if got.ID != req.ID || len(got.Queries) != 2 || got.Queries[0] != "seperate" {
		t.Errorf("round-tripped request = %+v, want %+v", got, req)
	}
}

func TestMultipleFramesOnOneStream(t *testing.T) {
	var buf bytes.Buffer
	WriteFrame(&buf, BatchRequest{ID: "a"})
	WriteFrame(&buf, BatchRequest{ID: "b"})

	r := bufio.NewReader(&buf)
	var first, second BatchRequest
	if err := ReadFrame(r, &first); err != nil {
		t.Fatalf("ReadFrame first: %v", err)
	}
	if err := ReadFrame(r, &second); err != nil {
		t.Fatalf("ReadFrame second: %v", err)
	}
	if first.ID != "a" || second.ID != "b" {
		t.Errorf("got %q, %q, want a, b", first.ID, second.ID)
	}
}

func TestToMatchPayload(t *testing.T) {
	m := variant.Match{Text: "separate", Similarity: 0.94, Via: "seperete", Lexicons: []string{"main"}}
	p := ToMatchPayload(m)
	if p.Text != "separate" || p.Score != 0.94 || p.Via != "seperete" || len(p.Lexicons) != 1 {
		t.Errorf("ToMatchPayload = %+v, unexpected", p)
	}
}

func TestRuneOffset(t *testing.T) {
	text := "héllo world"
	// "héllo" is 6 bytes (é is 2 bytes) but 5 runes.
	if got := runeOffset(text, 6); got != 5 {
		t.Errorf("runeOffset = %d, want 5", got)
	}
}
