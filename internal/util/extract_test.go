package util

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/gen2brain/go-fitz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a one-page PDF around the given content stream, with a
// correct xref table, so fixtures never live as opaque binary blobs.
func buildPDF(t *testing.T, contentStream string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>")
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(contentStream), contentStream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

func stubOCR(t *testing.T, fn func(doc *fitz.Document) (string, error)) *int {
	t.Helper()
	orig := ocrFallback
	t.Cleanup(func() { ocrFallback = orig })

	calls := 0
	ocrFallback = func(doc *fitz.Document) (string, error) {
		calls++
		return fn(doc)
	}
	return &calls
}

func TestExtractPDF_TextLayerSkipsOCR(t *testing.T) {
	calls := stubOCR(t, func(*fitz.Document) (string, error) {
		return "ocr text", nil
	})
	data := buildPDF(t, "BT /F1 12 Tf 72 720 Td (Jane Doe, jane@x.com) Tj ET")

	text, err := ExtractPDF(data)

	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Equal(t, 0, *calls)
}

func TestExtractPDF_EmptyTextLayerFallsBackToOCR(t *testing.T) {
	calls := stubOCR(t, func(*fitz.Document) (string, error) {
		return "Jane Doe\nSkills: Iava, Go", nil
	})
	data := buildPDF(t, "")

	text, err := ExtractPDF(data)

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Contains(t, text, "Skills: Java, Go")
}

func TestExtractPDF_NoTextAnywhere(t *testing.T) {
	calls := stubOCR(t, func(*fitz.Document) (string, error) {
		return "", ErrNoTextFound
	})
	data := buildPDF(t, "")

	_, err := ExtractPDF(data)

	assert.Equal(t, 1, *calls)
	assert.ErrorIs(t, err, ErrNoTextFound)
}

func TestExtractPDF_RejectsGarbage(t *testing.T) {
	calls := stubOCR(t, func(*fitz.Document) (string, error) {
		return "", errors.New("should not be reached")
	})

	_, err := ExtractPDF([]byte("not a pdf at all"))

	assert.Error(t, err)
	assert.Equal(t, 0, *calls)
}

func TestApplyOCRCorrections(t *testing.T) {
	in := "jane.doe©gmail.com | john(@)corp.com\nSkills: Iava, Pythen, Go"
	want := "jane.doe@gmail.com | john@corp.com\nSkills: Java, Python, Go"
	assert.Equal(t, want, applyOCRCorrections(in))
}

func TestApplyOCRCorrections_NoOpOnCleanText(t *testing.T) {
	in := "jane.doe@gmail.com\nSkills: Java, Python, Go"
	assert.Equal(t, in, applyOCRCorrections(in))
}
