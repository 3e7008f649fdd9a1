package receipt

import "errors"

var (
	// ErrImageRead is returned when a source image cannot be read
	ErrImageRead = errors.New("image read failed")
	// ErrRecognition is returned when the scanner fails to recognize an image
	ErrRecognition = errors.New("text recognition failed")
	// ErrCacheCorrupt is returned when persisted records cannot be decoded
	ErrCacheCorrupt = errors.New("cache corrupt")
	// ErrSinkWrite is returned when an output sink cannot be written
	ErrSinkWrite = errors.New("sink write failed")
)
