package scanning

import (
	"fmt"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeImage locates and decodes a QR symbol in an uploaded image or PDF
// and returns its raw text payload.
func DecodeImage(data []byte, contentType string) (string, error) {
	img, err := decodeToImage(data, contentType)
	if err != nil {
		return "", err
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("preparing image for QR decode: %w", err)
	}

	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bitmap, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", fmt.Errorf("no readable QR code in image: %w", err)
	}

	return result.GetText(), nil
}
