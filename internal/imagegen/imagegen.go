// Package imagegen renders the fallback post card: a 1200x675 gradient
// with the tip or headline wrapped across the middle.
package imagegen

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"dailytip/internal/config"
	"dailytip/internal/logger"
)

const (
	canvasWidth  = 1200
	canvasHeight = 675

	titleFontSize = 56
	bodyFontSize  = 36

	// text must fit within canvasWidth - 2*textInset per line
	textInset = 60

	jpegQuality = 92
)

type Composer struct {
	header string
	footer string
	hues   []int

	titleFace font.Face
	bodyFace  font.Face
	trueType  bool

	log *slog.Logger
}

// NewComposer probes the configured font paths once. When none loads, the
// built-in bitmap face is used; the card looks plainer but rendering still
// works.
func NewComposer(content config.ContentConfig) *Composer {
	c := &Composer{
		header: content.HeaderLabel,
		footer: content.Footer,
		hues:   content.BaseHues,
		log:    logger.With("imagegen"),
	}

	for _, path := range content.FontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		title, err := gg.LoadFontFace(path, titleFontSize)
		if err != nil {
			continue
		}
		body, err := gg.LoadFontFace(path, bodyFontSize)
		if err != nil {
			continue
		}
		c.titleFace = title
		c.bodyFace = body
		c.trueType = true
		c.log.Debug("loaded font", "path", path)
		break
	}

	if !c.trueType {
		c.log.Warn("no truetype font found, using built-in bitmap face")
		c.titleFace = basicfont.Face7x13
		c.bodyFace = basicfont.Face7x13
	}

	return c
}

// Render draws the card and writes it as a JPEG to outputPath. The same
// (text, seed) pair always produces the same raster before encoding.
func (c *Composer) Render(text string, seed int64, outputPath string) (string, error) {
	dc := gg.NewContextForRGBA(gradient(seed, c.hues, canvasWidth, canvasHeight))

	// Header label in a black rounded box, top-left.
	dc.SetFontFace(c.titleFace)
	headerW, headerH := dc.MeasureString(c.header)
	const headerX, headerY = 60.0, 60.0
	dc.SetRGB(0, 0, 0)
	dc.DrawRoundedRectangle(headerX-24, headerY-16, headerW+48, headerH+32, 16)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(c.header, headerX, headerY, 0, 1)

	// Body text, wrapped and centered line by line.
	dc.SetFontFace(c.bodyFace)
	maxTextWidth := float64(canvasWidth - 2*textInset)
	lines := wrapText(text, func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}, maxTextWidth)

	y := headerY + headerH + 48
	for _, line := range lines {
		_, lineH := dc.MeasureString(line)
		dc.DrawStringAnchored(line, canvasWidth/2, y, 0.5, 1)
		y += lineH + 12
	}

	// Footer hashtags near the bottom.
	_, footerH := dc.MeasureString(c.footer)
	dc.SetRGB255(230, 230, 230)
	dc.DrawStringAnchored(c.footer, canvasWidth/2, canvasHeight-40-footerH, 0.5, 1)

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return outputPath, nil
}

// gradient fills the canvas with a vertical blend between a lighter top
// color and a darker bottom color of a shifted hue. The seed fully
// determines the pair.
func gradient(seed int64, hues []int, width, height int) *image.RGBA {
	top, bottom := pickColors(seed, hues)
	tr, tg, tb := top.RGB255()
	br, bg, bb := bottom.RGB255()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		ratio := float64(y) / float64(height-1)
		c := color.RGBA{
			R: mix(tr, br, ratio),
			G: mix(tg, bg, ratio),
			B: mix(tb, bb, ratio),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mix(a, b uint8, ratio float64) uint8 {
	return uint8(float64(a)*(1-ratio) + float64(b)*ratio)
}

// pickColors chooses a base hue with a PRNG seeded by the caller, then
// derives the pastel pair: saturation 0.45, lightness 0.60 on top and 0.40
// on a hue shifted +40 degrees below.
func pickColors(seed int64, hues []int) (colorful.Color, colorful.Color) {
	if len(hues) == 0 {
		hues = config.DefaultContent().BaseHues
	}
	rng := rand.New(rand.NewSource(seed))
	hue := hues[rng.Intn(len(hues))]

	top := colorful.Hsl(float64(hue), 0.45, 0.60)
	bottom := colorful.Hsl(float64((hue+40)%360), 0.45, 0.40)
	return top, bottom
}

// wrapText greedily fills lines up to maxWidth. A word wider than the
// limit still gets its own line; no word is ever dropped.
func wrapText(text string, measure func(string) float64, maxWidth float64) []string {
	words := strings.Fields(text)
	var lines []string
	var current string

	for _, word := range words {
		trial := word
		if current != "" {
			trial = current + " " + word
		}
		if measure(trial) <= maxWidth || current == "" {
			current = trial
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
