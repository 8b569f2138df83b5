// Package debug provides debug utilities.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/facet/internal/engine/gpu"
)

// ErrNoSnapshot is returned when the device cannot read back pixels.
var ErrNoSnapshot = errors.New("device does not support snapshots")

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Capture reads the current frame from dev and saves it. dev must
// implement gpu.Snapshotter.
func (sc *ScreenshotCapture) Capture(dev gpu.Device) (string, error) {
	snap, ok := dev.(gpu.Snapshotter)
	if !ok {
		return "", ErrNoSnapshot
	}
	img, err := snap.Snapshot()
	if err != nil {
		return "", fmt.Errorf("reading frame: %w", err)
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img as PNG under a timestamped name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	// Create output directory if needed
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	for i := 1; fileExists(filename); i++ {
		filename = sc.filename(fmt.Sprintf("_%d", i))
	}

	if err := SavePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	return sc.filename("")
}

func (sc *ScreenshotCapture) filename(suffix string) string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s.png", sc.prefix, timestamp, suffix)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
