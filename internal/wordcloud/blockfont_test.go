package wordcloud

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// blockFont builds a minimal TrueType font in which every rune of runes maps
// to a filled square glyph. Glyph 0 is an empty .notdef.
func blockFont(runes []rune) []byte {
	sorted := append([]rune(nil), runes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	numGlyphs := len(sorted) + 1

	be := func(buf *bytes.Buffer, values ...any) {
		for _, v := range values {
			_ = binary.Write(buf, binary.BigEndian, v)
		}
	}

	// glyf + loca (short offsets, in units of two bytes).
	var glyf, loca bytes.Buffer
	be(&loca, uint16(0), uint16(0))
	for range sorted {
		// One contour, bounding box, end point 3, no instructions.
		be(&glyf, int16(1), int16(100), int16(0), int16(900), int16(800), uint16(3), uint16(0))
		// Four on-curve points with 16-bit deltas: x then y.
		be(&glyf, uint8(1), uint8(1), uint8(1), uint8(1))
		be(&glyf, int16(100), int16(0), int16(800), int16(0))
		be(&glyf, int16(0), int16(800), int16(0), int16(-800))
		be(&loca, uint16(glyf.Len()/2))
	}

	// cmap: one format 4 subtable for Windows Unicode BMP.
	segCount := len(sorted) + 1
	searchRange, entrySelector := 2, 0
	for searchRange*2 <= 2*segCount {
		searchRange *= 2
		entrySelector++
	}
	var sub bytes.Buffer
	be(&sub, uint16(4), uint16(16+8*segCount), uint16(0),
		uint16(2*segCount), uint16(searchRange), uint16(entrySelector), uint16(2*segCount-searchRange))
	for _, r := range sorted {
		be(&sub, uint16(r))
	}
	be(&sub, uint16(0xFFFF), uint16(0))
	for _, r := range sorted {
		be(&sub, uint16(r))
	}
	be(&sub, uint16(0xFFFF))
	for i, r := range sorted {
		be(&sub, uint16(i+1)-uint16(r))
	}
	be(&sub, uint16(1))
	for range segCount {
		be(&sub, uint16(0))
	}
	var cmap bytes.Buffer
	be(&cmap, uint16(0), uint16(1), uint16(3), uint16(1), uint32(12))
	cmap.Write(sub.Bytes())

	var head bytes.Buffer
	be(&head, uint32(0x00010000), uint32(0x00010000), uint32(0), uint32(0x5F0F3CF5),
		uint16(3), uint16(1000), int64(0), int64(0),
		int16(100), int16(0), int16(900), int16(800),
		uint16(0), uint16(8), int16(2), int16(0), int16(0))

	var hhea bytes.Buffer
	be(&hhea, uint32(0x00010000), int16(800), int16(-200), int16(0), uint16(1000),
		int16(100), int16(100), int16(900), int16(1), int16(0), int16(0),
		int16(0), int16(0), int16(0), int16(0), int16(0), uint16(numGlyphs))

	var hmtx bytes.Buffer
	for range numGlyphs {
		be(&hmtx, uint16(1000), int16(100))
	}

	var maxp bytes.Buffer
	be(&maxp, uint32(0x00010000), uint16(numGlyphs), uint16(4), uint16(1))
	for range 11 {
		be(&maxp, uint16(0))
	}

	var post bytes.Buffer
	be(&post, uint32(0x00030000))
	post.Write(make([]byte, 28))

	tables := []struct {
		tag  string
		data []byte
	}{
		{"cmap", cmap.Bytes()},
		{"glyf", glyf.Bytes()},
		{"head", head.Bytes()},
		{"hhea", hhea.Bytes()},
		{"hmtx", hmtx.Bytes()},
		{"loca", loca.Bytes()},
		{"maxp", maxp.Bytes()},
		{"post", post.Bytes()},
	}

	var out bytes.Buffer
	be(&out, uint32(0x00010000), uint16(len(tables)), uint16(128), uint16(3), uint16(0))
	offset := 12 + 16*len(tables)
	for _, tbl := range tables {
		out.WriteString(tbl.tag)
		be(&out, uint32(0), uint32(offset), uint32(len(tbl.data)))
		offset += (len(tbl.data) + 3) &^ 3
	}
	for _, tbl := range tables {
		out.Write(tbl.data)
		out.Write(make([]byte, ((len(tbl.data)+3)&^3)-len(tbl.data)))
	}
	return out.Bytes()
}
