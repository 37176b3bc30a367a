package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"
	"testing"
)

func TestFormatImageDataDataURI(t *testing.T) {
	p := NewProcessor(1024 * 1024)

	in := "data:image/png;base64,iVBORw0KGgo="
	got, err := p.FormatImageData(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("valid data URI should pass through unchanged")
	}
}

func TestFormatImageDataDataURIMissingPayload(t *testing.T) {
	p := NewProcessor(1024 * 1024)
	if _, err := p.FormatImageData("data:image/png,rawdata"); err == nil {
		t.Error("expected error for data URI without base64 payload")
	}
}

func TestFormatImageDataBareBase64(t *testing.T) {
	p := NewProcessor(1024 * 1024)

	// 產生一張真實的 JPEG 並取其 base64
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	got, err := p.FormatImageData(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("bare base64 should gain a data URI prefix, got %q", got[:30])
	}
}

func TestFormatImageDataInvalidInput(t *testing.T) {
	p := NewProcessor(1024 * 1024)

	for _, in := range []string{"", "not base64 at all!!!"} {
		if _, err := p.FormatImageData(in); err == nil {
			t.Errorf("expected error for input %q", in)
		}
	}
}
