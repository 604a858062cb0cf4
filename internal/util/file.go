package util

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

// DecodeSignatureDataURL 解析 PNG data URL，并按内容（而非声明）校验 MIME 与大小
func DecodeSignatureDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, pngDataURLPrefix) {
		return nil, ErrInvalidSignature
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, pngDataURLPrefix))
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalidSignature
	}
	if len(raw) > MaxSignatureBytes {
		return nil, ErrInvalidSignature
	}

	if _, err := ValidateMimeType(bytes.NewReader(raw), []string{MimePNG}); err != nil {
		return nil, ErrInvalidSignature
	}
	return raw, nil
}

func EncodePNGDataURL(raw []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(raw)
}

// ValidateMimeType 深度校验 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/"、"image/png"
func ValidateMimeType(reader *bytes.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, _ := reader.Read(buffer)

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, ErrInvalidSignature
}
