package downloader

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Placeholder reasons recorded in substitute documents.
const (
	ReasonSecured = "Document Secured/Sealed"
)

// AccessDeniedReason labels a placeholder created after an explicit
// HTTP denial.
func AccessDeniedReason(statusCode int) string {
	return fmt.Sprintf("HTTP %d - Access Denied", statusCode)
}

// PlaceholderBytes builds a small single-page PDF standing in for a
// document that could not be retrieved. The placeholder keeps the slot
// visible in the output directory so a gap in the filing record is
// distinguishable from a document that was never listed.
func PlaceholderBytes(filename, reason string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")

	stream := fmt.Sprintf(
		"BT\n/F1 14 Tf\n72 720 Td\n(%s) Tj\n"+
			"0 -28 Td\n/F1 10 Tf\n(Filename: %s) Tj\n"+
			"0 -20 Td\n(This document is not available for public access.) Tj\n"+
			"0 -20 Td\n(Generated: %s) Tj\nET",
		escapePDFString(reason),
		escapePDFString(filename),
		time.Now().Format("2006-01-02 15:04:05"),
	)
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)

	return buf.Bytes()
}

// escapePDFString escapes the characters with special meaning inside a
// PDF literal string.
func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
