package umbra

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// channelSuffixes name the per-channel shadow mask files.
var channelSuffixes = [channelsPerCell]string{"r", "g", "b", "a"}

// Capture writes target to PNG files in dir and returns their paths. The
// accumulation buffer is written as one straight-alpha image. The shadow
// buffer is split into one grayscale image per color channel, so each file
// shows the masks of every fourth light.
//
// Capture reads pixels back from the GPU and must be called from Draw
// after Compositor.Render.
func (r *EbitenRenderer) Capture(target Target, dir, label string) ([]string, error) {
	img := r.Image(target)
	if img == nil {
		return nil, fmt.Errorf("capture %s: no image", target)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture %s: %w", target, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	base := filepath.Join(dir, fmt.Sprintf("%s_%s_%s", time.Now().Format("20060102_150405"), sanitizeLabel(label), target))
	if target != TargetShadow {
		path := base + ".png"
		if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, channelsPerCell)
	for ch, suffix := range channelSuffixes {
		path := base + "_" + suffix + ".png"
		if err := writePNG(path, channelPlane(pixels, w, h, ch)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// unpremultiply converts premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// channelPlane extracts one channel of RGBA pixels as a grayscale image.
func channelPlane(pixels []byte, w, h, ch int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		if j := i*4 + ch; j < len(pixels) {
			img.Pix[i] = pixels[j]
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
