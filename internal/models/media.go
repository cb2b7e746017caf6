package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyMedia = errors.New("media payload is empty")

// Media is one captured frame, uploaded image or recorded audio blob.
type Media struct {
	MIMEType string
	Data     []byte
}

func (m Media) Empty() bool {
	return len(m.Data) == 0
}

// FromBase64 decodes a bare base64 payload.
func FromBase64(encoded, mimeType string) (Media, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Media{}, fmt.Errorf("failed to decode base64 media: %w", err)
	}
	if len(data) == 0 {
		return Media{}, ErrEmptyMedia
	}
	return Media{MIMEType: mimeType, Data: data}, nil
}

// ParseDataURL accepts "data:<mime>;base64,<payload>" as produced by browser
// file readers and canvases. A bare base64 string is accepted too and gets
// defaultMIME.
func ParseDataURL(s, defaultMIME string) (Media, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return FromBase64(s, defaultMIME)
	}

	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return Media{}, fmt.Errorf("malformed data URL: missing payload")
	}

	meta := strings.TrimPrefix(header, "data:")
	if !strings.HasSuffix(meta, ";base64") {
		return Media{}, fmt.Errorf("unsupported data URL encoding: %q", meta)
	}

	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = defaultMIME
	}
	return FromBase64(payload, mimeType)
}
