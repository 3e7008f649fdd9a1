package scanning

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Tesseract implements the Scanner interface by running the tesseract CLI.
// Each non-blank output line is one text fragment.
type Tesseract struct {
	binary   string
	language string
}

// NewTesseract creates a new Tesseract Scanner instance and checks that the
// binary can be found
func NewTesseract(binary string, language string) (*Tesseract, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("locating tesseract binary: %w", err)
	}

	return &Tesseract{
		binary:   path,
		language: language,
	}, nil
}

// args builds the tesseract command line; the image comes in on stdin
func (t *Tesseract) args() []string {
	return []string{"-", "stdout", "-l", t.language,
		"--psm", "4",
		"--oem", "3",
		"-c", "preserve_interword_spaces=1",
	}
}

// ScanText feeds the image to tesseract and splits its output into lines
func (t *Tesseract) ScanText(imageData []byte, contentType string) ([]string, error) {
	// tesseract reads JPEG and PNG itself but neither PDF nor HEIC
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "application/pdf" || isHEIC(imageData, mimeType) {
		pngData, err := prepareImageData(imageData, mimeType)
		if err != nil {
			return nil, err
		}
		imageData = pngData
	}

	cmd := exec.Command(t.binary, t.args()...)
	cmd.Stdin = bytes.NewReader(imageData)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running tesseract: %w - %s", err, msg)
		}
		return nil, fmt.Errorf("running tesseract: %w", err)
	}

	return splitLines(stdout.String()), nil
}

// splitLines turns tesseract's text output into fragments
func splitLines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	return compactFragments(strings.Split(output, "\n"))
}

// Close is a no-op, every scan starts a new process
func (t *Tesseract) Close() error {
	return nil
}
