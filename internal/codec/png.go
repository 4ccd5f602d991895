package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"

	pngstructure "github.com/dsoprea/go-png-image-structure/v2"

	"github.com/photolab-studio/photolab/internal/metadata"
)

// pngTextEntries reads tEXt chunks into free-form info entries. Malformed
// chunks are skipped.
func pngTextEntries(data []byte) []metadata.Entry {
	var entries []metadata.Entry
	walkPNGChunks(data, func(typ string, body []byte) {
		if typ != "tEXt" {
			return
		}
		null := bytes.IndexByte(body, 0)
		if null <= 0 {
			return
		}
		value := metadata.Text(string(body[null+1:]))
		entries = append(entries, metadata.Entry{
			Key:      string(body[:null]),
			Source:   metadata.SourceInfo,
			TagID:    metadata.NoTagID,
			Original: value,
			Value:    value,
		})
	})
	return entries
}

// walkPNGChunks calls fn for each chunk in a PNG stream, stopping at IEND
// or the first structural inconsistency.
func walkPNGChunks(data []byte, fn func(typ string, body []byte)) {
	if len(data) < 8 || !bytes.Equal(data[:8], pngSignature) {
		return
	}
	offset := 8
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := string(data[offset+4 : offset+8])
		offset += 8
		if length < 0 || offset+length+4 > len(data) {
			return
		}
		fn(typ, data[offset:offset+length])
		offset += length + 4
		if typ == "IEND" {
			return
		}
	}
}

// encodePNG encodes the image and embeds the entries: tag-addressed fields
// as an eXIf chunk, free-form fields as tEXt chunks before IEND.
func encodePNG(img image.Image, entries []metadata.Entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	data := buf.Bytes()

	rootIb, err := buildExifBuilder(entries)
	if err != nil {
		return nil, err
	}
	if rootIb != nil {
		pmp := pngstructure.NewPngMediaParser()
		intfc, err := pmp.ParseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("reparse png: %w", err)
		}
		cs := intfc.(*pngstructure.ChunkSlice)
		if err := cs.SetExif(rootIb); err != nil {
			return nil, fmt.Errorf("set png exif: %w", err)
		}
		out := new(bytes.Buffer)
		if err := cs.WriteTo(out); err != nil {
			return nil, fmt.Errorf("write png chunks: %w", err)
		}
		data = out.Bytes()
	}

	return spliceTextChunks(data, entries)
}

// spliceTextChunks inserts one tEXt chunk per info entry immediately before
// the IEND chunk.
func spliceTextChunks(data []byte, entries []metadata.Entry) ([]byte, error) {
	var chunks bytes.Buffer
	for i := range entries {
		entry := &entries[i]
		if entry.Source != metadata.SourceInfo || entry.Value.IsAbsent() {
			continue
		}
		body := append([]byte(entry.Key), 0)
		body = append(body, []byte(entry.Value.Display())...)
		writePNGChunk(&chunks, "tEXt", body)
	}
	if chunks.Len() == 0 {
		return data, nil
	}

	iend := findIEND(data)
	if iend < 0 {
		return nil, fmt.Errorf("encode png: missing IEND chunk")
	}
	out := make([]byte, 0, len(data)+chunks.Len())
	out = append(out, data[:iend]...)
	out = append(out, chunks.Bytes()...)
	out = append(out, data[iend:]...)
	return out, nil
}

// findIEND returns the byte offset of the IEND chunk header, or -1.
func findIEND(data []byte) int {
	result := -1
	offset := 8
	walkPNGChunks(data, func(typ string, body []byte) {
		if typ == "IEND" && result < 0 {
			result = offset
		}
		offset += 12 + len(body)
	})
	return result
}

func writePNGChunk(w *bytes.Buffer, typ string, body []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(body)))
	copy(header[4:], typ)
	w.Write(header[:])
	w.Write(body)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(body)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	w.Write(sum[:])
}
