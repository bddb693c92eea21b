package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// decodePDF concatenates the plain text of every non-empty page
func decodePDF(ctx context.Context, payload []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = &DecodeError{Type: TypePDF, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", &DecodeError{Type: TypePDF, Message: "failed to create PDF reader", Cause: err}
	}

	var textBuilder strings.Builder
	pageCount := reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DecodeError{Type: TypePDF, Message: "failed to extract page text", Cause: err}
		}
		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(pageText)
	}

	if strings.TrimSpace(textBuilder.String()) == "" {
		return "", &DecodeError{Type: TypePDF, Message: "no extractable text"}
	}
	return textBuilder.String(), nil
}
