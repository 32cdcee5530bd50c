package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellidocs/internal/domain"
)

func TestExtract_UnsupportedFormat(t *testing.T) {
	r := New()
	_, err := r.Extract(domain.Document{Name: "report.xlsx", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "report.xlsx")
}

func TestExtract_TxtUTF8(t *testing.T) {
	r := New()
	text, err := r.Extract(domain.Document{Name: "notes.TXT", Data: []byte("  hello world\n")})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtract_TxtLatin1Fallback(t *testing.T) {
	r := New()
	// 0xE9 is é in latin-1 and invalid as a standalone UTF-8 byte.
	text, err := r.Extract(domain.Document{Name: "legacy.txt", Data: []byte{'c', 'a', 'f', 0xE9}})
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestExtract_Docx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r := New()
	text, err := r.Extract(domain.Document{Name: "claim.docx", Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_DocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("something-else.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r := New()
	_, err = r.Extract(domain.Document{Name: "claim.docx", Data: buf.Bytes()})
	require.Error(t, err)
}

func TestExtract_PdfGarbage(t *testing.T) {
	r := New()
	_, err := r.Extract(domain.Document{Name: "broken.pdf", Data: []byte("this is not a pdf")})
	require.Error(t, err)
}
