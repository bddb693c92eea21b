package ingestion

import (
	"context"
	"unicode/utf8"
)

// Decode extracts the plain text of payload according to docType
func Decode(ctx context.Context, docType DocumentType, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch docType {
	case TypePDF:
		return decodePDF(ctx, payload)
	case TypeDOCX:
		return decodeDOCX(payload)
	case TypePlainText:
		if !utf8.Valid(payload) {
			return "", &DecodeError{Type: TypePlainText, Message: "payload is not valid UTF-8"}
		}
		return string(payload), nil
	default:
		return "", &UnsupportedTypeError{Type: string(docType)}
	}
}
