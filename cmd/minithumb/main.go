package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"thumbnail-normalizer/internal/photosize"
)

func main() {
	var (
		inFile  = flag.String("in", "", "file containing the packed minithumbnail blob")
		inB64   = flag.String("b64", "", "packed minithumbnail blob as base64 (alternative to -in)")
		outFile = flag.String("out", "minithumbnail.jpg", "output image path (.jpg or .png)")
		scale   = flag.Int("scale", 1, "integer upscale factor for the preview")
		blur    = flag.Float64("blur", 0, "gaussian blur sigma applied after upscaling")
	)
	flag.Parse()

	packed, err := loadPacked(*inFile, *inB64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	m := photosize.ExpandMinithumbnail(packed)
	if m == nil {
		fmt.Fprintln(os.Stderr, "Error: input is not a packed minithumbnail")
		os.Exit(1)
	}
	fmt.Printf("Expanded %dx%d minithumbnail (%d bytes)\n", m.Width, m.Height, len(m.Data))

	img, err := renderPreview(m, *scale, *blur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := imaging.Save(img, *outFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save %s: %v\n", *outFile, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outFile)
}

// loadPacked reads the packed blob from exactly one of the two inputs.
func loadPacked(path, b64 string) ([]byte, error) {
	switch {
	case path != "" && b64 != "":
		return nil, fmt.Errorf("use either -in or -b64, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	case b64 != "":
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 input: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no input given")
}

// renderPreview decodes the reconstructed JPEG and applies the optional
// upscale and blur.
func renderPreview(m *photosize.Minithumbnail, scale int, blur float64) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(m.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode reconstructed JPEG: %w", err)
	}
	if scale > 1 {
		img = imaging.Resize(img, int(m.Width)*scale, int(m.Height)*scale, imaging.Lanczos)
	}
	if blur > 0 {
		img = imaging.Blur(img, blur)
	}
	return img, nil
}
