// Package pdf renders single-page text documents such as letters.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	fontSize   = 12
	leading    = 16
	marginLeft = 60
	marginTop  = 780
	// Helvetica at 12pt fits roughly this many characters per A4 line.
	maxLineRunes = 85
)

// Document is a plain text page. Empty lines render as blank lines.
type Document struct {
	Title string
	Lines []string
}

// Render produces a minimal PDF 1.4 file with one A4 page.
func Render(doc Document) ([]byte, error) {
	lines := make([]string, 0, len(doc.Lines)+2)
	if doc.Title != "" {
		lines = append(lines, doc.Title, "")
	}
	for _, l := range doc.Lines {
		lines = append(lines, wrap(l, maxLineRunes)...)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("pdf: empty document")
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("BT\n/F1 %d Tf\n%d TL\n%d %d Td\n", fontSize, leading, marginLeft, marginTop))
	for i, line := range lines {
		escaped := escape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func escape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)", "\r", "", "\n", " ")
	return replacer.Replace(v)
}

// wrap splits s on word boundaries so no line exceeds width runes, except
// single words longer than width.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	return append(lines, cur.String())
}
