package recognize

import (
	"context"
	"errors"
	"testing"
)

type fakeRecognizer struct {
	text string
	err  error
	got  []byte
}

func (f *fakeRecognizer) RecognizeImage(ctx context.Context, data []byte) (string, error) {
	f.got = data
	return f.text, f.err
}

func TestTextFromBytesRoutesImagesToRecognizer(t *testing.T) {
	rec := &fakeRecognizer{text: "Name: Ram Singh"}

	got, err := TextFromBytes(context.Background(), rec, []byte{0xff, 0xd8}, "image/jpeg", "marksheet.jpg")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != "Name: Ram Singh" {
		t.Fatalf("unexpected text: %q", got)
	}
	if rec.got == nil {
		t.Fatalf("recognizer not called")
	}
}

func TestTextFromBytesFallsBackToExtension(t *testing.T) {
	rec := &fakeRecognizer{text: "ok"}

	if _, err := TextFromBytes(context.Background(), rec, []byte{1}, "application/octet-stream", "scan.PNG"); err != nil {
		t.Fatalf("extension fallback failed: %v", err)
	}
}

func TestTextFromBytesRejectsUnknownType(t *testing.T) {
	rec := &fakeRecognizer{}

	_, err := TextFromBytes(context.Background(), rec, []byte{1}, "application/zip", "archive.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestTextFromBytesPropagatesRecognizerOutage(t *testing.T) {
	rec := &fakeRecognizer{err: ErrUnavailable}

	_, err := TextFromBytes(context.Background(), rec, []byte{1}, "image/png", "scan.png")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
