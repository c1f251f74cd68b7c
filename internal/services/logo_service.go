// internal/services/logo_service.go
package services

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/models"
)

// Tolerance for background removal: a pixel counts as background when its
// red, green and blue channels are all within this distance of pure white.
const whiteTolerance = 30

const bwThreshold = 128

// Vector input bypasses pixel transforms; true bounds are not computed.
const placeholderDimension = 200

// LogoService converts an uploaded raster image into one derived artifact.
// Transforms are stateless; any failure removes the partial output file.
type LogoService struct{}

func NewLogoService() *LogoService {
	return &LogoService{}
}

// Process reads srcPath, applies the transform for mode, writes a PNG to
// dstPath, and returns the output dimensions. SVG sources are copied through
// unmodified with placeholder dimensions.
func (s *LogoService) Process(srcPath, dstPath string, mode models.LogoMode) (int, int, error) {
	if strings.EqualFold(filepath.Ext(srcPath), ".svg") {
		if err := copyFile(srcPath, dstPath); err != nil {
			os.Remove(dstPath)
			return 0, 0, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		return placeholderDimension, placeholderDimension, nil
	}

	src, err := imaging.Open(srcPath)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	var out *image.NRGBA
	switch mode {
	case models.LogoModeMonochrome:
		out = monochrome(src)
	case models.LogoModeTransparent:
		out = ensureAlpha(src)
	case models.LogoModeBackgroundRemoved:
		out = removeWhiteBackground(src, whiteTolerance)
	default:
		out = monochrome(src)
	}

	if err := imaging.Save(out, dstPath); err != nil {
		os.Remove(dstPath)
		logrus.WithError(err).WithField("dst", dstPath).Error("Failed to save processed logo")
		return 0, 0, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	bounds := out.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// monochrome produces engraving-ready output: transparency flattened onto
// white, grayscale, contrast stretched, then a hard threshold leaving every
// pixel pure black or pure white and fully opaque.
func monochrome(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	white := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{255, 255, 255, 255})
	flat := imaging.Overlay(white, src, image.Pt(0, 0), 1.0)

	gray := imaging.Grayscale(flat)
	stretchContrast(gray)

	for i := 0; i < len(gray.Pix); i += 4 {
		v := uint8(0)
		if gray.Pix[i] > bwThreshold {
			v = 255
		}
		gray.Pix[i] = v
		gray.Pix[i+1] = v
		gray.Pix[i+2] = v
		gray.Pix[i+3] = 255
	}

	return gray
}

// stretchContrast remaps the grayscale range so the darkest pixel becomes 0
// and the lightest 255. Pixels are assumed gray (r == g == b).
func stretchContrast(img *image.NRGBA) {
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return
	}

	scale := 255.0 / float64(hi-lo)
	for i := 0; i < len(img.Pix); i += 4 {
		v := uint8(float64(img.Pix[i]-lo)*scale + 0.5)
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
	}
}

// ensureAlpha passes the image through with an alpha channel present,
// preserving any existing transparency.
func ensureAlpha(src image.Image) *image.NRGBA {
	return imaging.Clone(src)
}

// removeWhiteBackground zeroes the alpha of every pixel whose color channels
// are all within tolerance of pure white; other pixels keep their alpha.
func removeWhiteBackground(src image.Image, tolerance int) *image.NRGBA {
	img := imaging.Clone(src)
	threshold := uint8(255 - tolerance)

	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
		if r >= threshold && g >= threshold && b >= threshold {
			img.Pix[i+3] = 0
		}
	}

	return img
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
