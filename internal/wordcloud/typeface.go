package wordcloud

import (
	"bytes"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// typeface produces sized faces of one font.
type typeface interface {
	face(size float64) (font.Face, error)
	// covers reports whether every non-space rune of text has a glyph.
	covers(text string) bool
}

type goTypeface struct {
	font *truetype.Font
}

func (t goTypeface) face(size float64) (font.Face, error) {
	return truetype.NewFace(t.font, &truetype.Options{Size: size}), nil
}

func (t goTypeface) covers(text string) bool {
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if t.font.Index(r) == 0 {
			return false
		}
	}
	return true
}

// sfntTypeface holds fonts loaded from disk, including CFF-flavoured OpenType
// which freetype cannot read.
type sfntTypeface struct {
	font *sfnt.Font
}

func (t sfntTypeface) face(size float64) (font.Face, error) {
	return opentype.NewFace(t.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
}

func (t sfntTypeface) covers(text string) bool {
	var buf sfnt.Buffer
	for _, r := range text {
		if r == ' ' {
			continue
		}
		idx, err := t.font.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}

func parseTypeface(data []byte) (typeface, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		f, err := collection.Font(0)
		if err != nil {
			return nil, err
		}
		return sfntTypeface{font: f}, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return sfntTypeface{font: f}, nil
}
