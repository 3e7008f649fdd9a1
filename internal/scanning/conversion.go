package scanning

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// receiptTextPrompt is the shared prompt used by all LLM providers for reading receipts
const receiptTextPrompt = `You are reading a photographed retail receipt. Transcribe every piece of printed text exactly as it appears.

Return ONLY a JSON array of strings, one element per text fragment, in reading order (top to bottom, left to right). Example:
["Store Name", "123 Main St", "Apples", "2.50"]

Important:
- Keep item names and their prices as separate fragments
- Do not correct spelling, reformat numbers or translate text
- Do not skip store headers, member numbers or unit prices
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// renderPDF rasterizes the first page of a PDF; receipts are single page
func renderPDF(pdfData []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

// decodeImage decodes JPEG, GIF, PNG and HEIC/HEIF data
func decodeImage(imageData []byte, mimeType string) (image.Image, error) {
	if isHEIC(imageData, mimeType) {
		img, err := heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("unsupported image format %q, expected JPEG, PNG, GIF, HEIC, HEIF or PDF: %w", mimeType, err)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// isHEIC checks the MIME type and the ftyp box brand at offset 8
func isHEIC(data []byte, mimeType string) bool {
	if strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif") {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// prepareImageData normalizes the input to PNG, the one format every
// vision model accepts. PNG input is passed through untouched.
func prepareImageData(imageData []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	if mimeType == "image/png" && !isHEIC(imageData, mimeType) {
		return imageData, nil
	}

	var (
		img image.Image
		err error
	)
	if mimeType == "application/pdf" {
		img, err = renderPDF(imageData)
	} else {
		img, err = decodeImage(imageData, mimeType)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
