package util

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrNoTextFound means the document produced no text from either the text
// layer or the OCR fallback. The upload flow treats this as terminal and asks
// the user to enter their details manually.
var ErrNoTextFound = errors.New("no text found in document")

// ocrCorrections is a deliberately narrow patch list for misreads tesseract
// keeps producing on resume scans. It is not a spell-checker; only literal,
// known-bad tokens belong here.
var ocrCorrections = [][2]string{
	{"©", "@"},
	{"(@)", "@"},
	{"Iava", "Java"},
	{"Pythen", "Python"},
}

// ocrFallback is a seam over extractPDFOCR so tests can observe the fallback
// gate without a tesseract binary installed.
var ocrFallback = extractPDFOCR

// ExtractPDF extracts raw text from a PDF. The text layer is tried first,
// page by page; OCR only runs when the whole text layer is blank, since it is
// slow and strictly worse on documents that have real text.
func ExtractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			log.Printf("page %d: failed to read text layer: %v", n+1, err)
			continue
		}
		pages = append(pages, text)
	}

	result := strings.TrimSpace(strings.Join(pages, "\n"))
	if result == "" {
		log.Println("Empty text layer, falling back to OCR")
		result, err = ocrFallback(doc)
		if err != nil {
			return "", err
		}
	}

	if strings.TrimSpace(result) == "" {
		return "", ErrNoTextFound
	}

	return applyOCRCorrections(result), nil
}

// extractPDFOCR rasterizes every page and runs tesseract on the images.
func extractPDFOCR(doc *fitz.Document) (string, error) {
	if err := checkTesseract(); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			log.Println(lastErr)
			continue
		}

		tmpFile, err := os.CreateTemp("", "page-*.png")
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to create temp file: %w", n+1, err)
			log.Println(lastErr)
			continue
		}
		tmpPath := tmpFile.Name()
		tmpFile.Close()
		defer os.Remove(tmpPath)

		if err := savePNG(tmpPath, img); err != nil {
			lastErr = fmt.Errorf("page %d: failed to save PNG: %w", n+1, err)
			log.Println(lastErr)
			continue
		}

		cmd := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng")
		out, err := cmd.CombinedOutput()
		if err != nil {
			lastErr = fmt.Errorf("page %d: tesseract error: %w, output: %s", n+1, err, string(out))
			log.Println(lastErr)
			continue
		}

		pageText := strings.TrimSpace(string(out))
		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", ErrNoTextFound
	}

	log.Printf("OCR extracted %d chars", len(result))
	return result, nil
}

func applyOCRCorrections(text string) string {
	for _, c := range ocrCorrections {
		text = strings.ReplaceAll(text, c[0], c[1])
	}
	return text
}

// checkTesseract verifies tesseract is installed and runnable.
func checkTesseract() error {
	cmd := exec.Command("tesseract", "-v")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	return nil
}
