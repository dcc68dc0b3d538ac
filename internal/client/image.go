package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrNotImage is returned when a file handed to EncodeImage is not an image.
var ErrNotImage = errors.New("file is not an image")

// EncodeImage reads an image file and returns it as an inline data URL,
// the form stored in Person.Image.
func EncodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return EncodeImageBytes(data)
}

// EncodeImageBytes returns data as a data URL after sniffing its content type.
func EncodeImageBytes(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
