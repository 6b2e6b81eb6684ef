package storage

import (
	"encoding/base64"
	"strings"

	"Foodgram-Backend/domain"

	"github.com/gabriel-vasile/mimetype"
)

const dataURIPrefix = "data:image/"

var AllowImage = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// DecodeBase64Image decodes an inline "data:image/<ext>;base64,<data>"
// payload. The declared type is not trusted: the content is sniffed and
// must be one of AllowImage.
func DecodeBase64Image(payload string) (*Image, error) {
	if !strings.HasPrefix(payload, dataURIPrefix) {
		return nil, invalidImage("expected data:image/<ext>;base64,<data>")
	}

	header, encoded, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, invalidImage("expected data:image/<ext>;base64,<data>")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, invalidImage("image payload is not valid base64")
	}
	if len(data) == 0 {
		return nil, invalidImage("image payload is empty")
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), AllowImage...) {
		return nil, invalidImage("unsupported image type " + mtype.String())
	}

	return &Image{
		Data:        data,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
	}, nil
}

func invalidImage(msg string) error {
	return domain.NewValidationError("image", domain.ErrInvalidFormat, msg)
}
