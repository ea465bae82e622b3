package wordcloud

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/emotube/backend/internal/storage"
)

const (
	DefaultWidth       = 1000
	DefaultHeight      = 800
	DefaultMaxWords    = 200
	DefaultMaxFontSize = 150
	DefaultMinFontSize = 12
)

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// Renderer draws keyword clouds and hands the PNG to an artifact store.
type Renderer struct {
	Store       storage.ArtifactStore
	Width       int
	Height      int
	MaxWords    int
	MaxFontSize float64
	MinFontSize float64

	fallback typeface
	fonts    map[string]typeface
}

// NewRenderer returns a Renderer with default geometry writing to store. All
// languages are drawn with Go Regular until LoadFont registers another face.
func NewRenderer(store storage.ArtifactStore) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{
		Store:       store,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxWords:    DefaultMaxWords,
		MaxFontSize: DefaultMaxFontSize,
		MinFontSize: DefaultMinFontSize,
		fallback:    goTypeface{font: f},
		fonts:       make(map[string]typeface),
	}, nil
}

// LoadFont reads a TrueType or OpenType file (or the first font of a .ttc
// collection) and uses it for the given ISO 639-1 languages.
func (r *Renderer) LoadFont(path string, langs ...string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	tf, err := parseTypeface(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	r.setFont(tf, langs...)
	return nil
}

func (r *Renderer) setFont(tf typeface, langs ...string) {
	if r.fonts == nil {
		r.fonts = make(map[string]typeface)
	}
	for _, lang := range langs {
		r.fonts[strings.ToLower(lang)] = tf
	}
}

func (r *Renderer) typefaceFor(lang string) typeface {
	if tf, ok := r.fonts[strings.ToLower(lang)]; ok {
		return tf
	}
	return r.fallback
}

// Render draws the words of text and stores the image as <name>.png,
// returning the store's location for it.
func (r *Renderer) Render(ctx context.Context, name, text, lang string) (string, error) {
	if r == nil || r.Store == nil {
		return "", storage.ErrArtifactStorageUnavailable
	}

	var buf bytes.Buffer
	if err := r.Draw(&buf, text, lang); err != nil {
		return "", err
	}

	location, err := r.Store.Save(ctx, name+".png", &buf)
	if err != nil {
		return "", fmt.Errorf("store keyword cloud: %w", err)
	}
	return location, nil
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// Draw writes the PNG for text to w. Words are sized by frequency and placed
// on a spiral out from the centre; words that do not fit are skipped.
func (r *Renderer) Draw(w io.Writer, text, lang string) error {
	dc := gg.NewContext(r.Width, r.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	words := Frequencies(text, lang)
	if r.MaxWords > 0 && len(words) > r.MaxWords {
		words = words[:r.MaxWords]
	}

	tf := r.typefaceFor(lang)
	faces := make(map[int]font.Face)
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	var placed []box
	if len(words) > 0 {
		top := float64(words[0].Count)
		for i, wc := range words {
			size := r.MinFontSize + (r.MaxFontSize-r.MinFontSize)*float64(wc.Count)/top
			key := int(math.Round(size))
			face, ok := faces[key]
			if !ok {
				var err error
				if face, err = tf.face(float64(key)); err != nil {
					return fmt.Errorf("keyword cloud face: %w", err)
				}
				faces[key] = face
			}
			dc.SetFontFace(face)

			tw, th := dc.MeasureString(wc.Word)
			x, y, ok := r.findSpot(placed, tw, th)
			if !ok {
				continue
			}
			placed = append(placed, box{x0: x - tw/2, y0: y - th/2, x1: x + tw/2, y1: y + th/2})

			dc.SetColor(palette[i%len(palette)])
			dc.DrawStringAnchored(wc.Word, x, y, 0.5, 0.5)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode keyword cloud: %w", err)
	}
	return nil
}

func (r *Renderer) findSpot(placed []box, tw, th float64) (float64, float64, bool) {
	cx, cy := float64(r.Width)/2, float64(r.Height)/2
	maxRadius := math.Hypot(cx, cy)

	for t := 0.0; ; t += 0.1 {
		radius := 2 * t
		if radius > maxRadius {
			return 0, 0, false
		}
		x := cx + radius*math.Cos(t)
		y := cy + radius*math.Sin(t)

		candidate := box{x0: x - tw/2, y0: y - th/2, x1: x + tw/2, y1: y + th/2}
		if candidate.x0 < 0 || candidate.y0 < 0 || candidate.x1 > float64(r.Width) || candidate.y1 > float64(r.Height) {
			continue
		}

		free := true
		for _, p := range placed {
			if candidate.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return x, y, true
		}
	}
}
