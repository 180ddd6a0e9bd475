package ipc

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteFrame writes v as a length-prefixed msgpack frame: a 4-byte
// big-endian length followed by the encoded payload, so a stream
// reader knows exactly how many bytes to consume per message.
func WriteFrame(w io.Writer, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadFrame reads one length-prefixed msgpack frame from r and decodes
// it into v.
func ReadFrame(r *bufio.Reader, v any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}
	return msgpack.Unmarshal(data, v)
}

// ToMatchPayload converts a ranked pkg/variant.Match into its wire
// form for a BatchResponse/TextSearchResponse.
func ToMatchPayload(m variant.Match) MatchPayload {
	return MatchPayload{
		Text:      m.Text,
		Score:     m.Similarity,
		DistScore: m.DistScore,
		FreqScore: m.FreqScore,
		Lexicons:  m.Lexicons,
		Via:       m.Via,
	}
}

// ToMatchPayloads converts a whole ranked result list.
func ToMatchPayloads(matches []variant.Match) []MatchPayload {
	out := make([]MatchPayload, len(matches))
	for i, m := range matches {
		out[i] = ToMatchPayload(m)
	}
	return out
}

// ToSegmentPayload converts a pkg/textsearch.Match into its wire form.
// When unicodeOffsets is set, Begin/End are rune offsets into text
// rather than byte offsets, per spec.md §3's unicodeoffsets option.
func ToSegmentPayload(m textsearch.Match, text string, unicodeOffsets bool) SegmentPayload {
	begin, end := m.Begin, m.End
	if unicodeOffsets {
		begin = runeOffset(text, m.Begin)
		end = runeOffset(text, m.End)
	}
	return SegmentPayload{
		Offset:   Offset{Begin: begin, End: end},
		Text:     m.Text,
		Variants: ToMatchPayloads(m.Variants),
	}
}

// runeOffset converts a byte offset into text to a rune offset.
func runeOffset(text string, byteOffset int) int {
	return len([]rune(text[:byteOffset]))
}
