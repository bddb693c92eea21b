package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	docxBodyPart = "word/document.xml"
	wordMLSpace  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// decodeDOCX collects the text runs (w:t) of the main document part, joined with a space
func decodeDOCX(payload []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", &DecodeError{Type: TypeDOCX, Message: "not a zip container", Cause: err}
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", &DecodeError{Type: TypeDOCX, Message: "missing " + docxBodyPart}
	}

	rc, err := body.Open()
	if err != nil {
		return "", &DecodeError{Type: TypeDOCX, Message: "failed to open " + docxBodyPart, Cause: err}
	}
	defer func() { _ = rc.Close() }()

	runs, err := collectTextRuns(rc)
	if err != nil {
		return "", &DecodeError{Type: TypeDOCX, Message: "malformed " + docxBodyPart, Cause: err}
	}
	if len(runs) == 0 {
		return "", &DecodeError{Type: TypeDOCX, Message: "document has no text"}
	}
	return strings.Join(runs, " "), nil
}

func collectTextRuns(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var runs []string
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return runs, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "t" || (start.Name.Space != wordMLSpace && start.Name.Space != "w") {
			continue
		}
		var run string
		if err := decoder.DecodeElement(&run, &start); err != nil {
			return nil, fmt.Errorf("text run: %w", err)
		}
		if run != "" {
			runs = append(runs, run)
		}
	}
}
