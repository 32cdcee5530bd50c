package extract

import (
	"bytes"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts the plain text of a PDF payload. The pdf library only
// opens paths, so the payload goes through a temp file.
func pdfText(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "intellidocs-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return "", err
	}

	f, rdr, err := pdf.Open(tmp.Name())
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := rdr.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
