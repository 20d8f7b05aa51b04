package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format identifies the source document type.
type Format string

// Supported resume document formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// Document is a resume document loaded into memory.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// MIMEType returns the MIME type for the document format, used when the raw
// document is sent to a vision model.
func (d *Document) MIMEType() string {
	switch d.Format {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// LoadDocument reads a resume file and detects its format.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format, err := DetectFormat(path, data)
	if err != nil {
		return nil, err
	}

	return &Document{
		Name:   filepath.Base(path),
		Format: format,
		Data:   data,
	}, nil
}

// DetectFormat determines the document format from content, falling back to
// the file extension. Content wins: a .doc file that is really a zip with
// word/document.xml is treated as DOCX.
func DetectFormat(name string, data []byte) (Format, error) {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF, nil
	}
	if isDOCXArchive(data) {
		return FormatDOCX, nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".md", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", filepath.Ext(name))
	}
}

// ExtractText pulls plain text from the document. The result is raw: callers
// run CleanText before prompting.
func (d *Document) ExtractText() (string, error) {
	switch d.Format {
	case FormatPDF:
		return extractPDF(d.Data)
	case FormatDOCX:
		return extractDOCX(d.Data)
	case FormatText:
		return string(d.Data), nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", d.Format)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("document.xml not found in DOCX archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read document.xml: %w", err)
	}

	return stripDocxXML(string(raw)), nil
}

// stripDocxXML flattens document.xml to plain text, inserting newlines at
// paragraph and line-break boundaries.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func isDOCXArchive(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
