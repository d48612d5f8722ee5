package scanning

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// blankPNG renders an all-white image with no symbol in it.
func blankPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

// encodeQR renders text as a QR code PNG for round-trip tests.
func encodeQR(text string) []byte {
	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(text, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	Expect(err).NotTo(HaveOccurred())

	var buf bytes.Buffer
	Expect(png.Encode(&buf, matrix)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("DecodeImage", func() {
	When("the image contains a QR code", func() {
		It("should return the decoded text", func() {
			payload := `<PrintLetterBarcodeData uid="123456789012" name="Test User"/>`
			text, err := DecodeImage(encodeQR(payload), "image/png")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal(payload))
		})
	})

	When("the image contains no QR code", func() {
		It("should return an error", func() {
			blank := blankPNG(64, 64)
			_, err := DecodeImage(blank, "image/png")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no readable QR code"))
		})
	})

	When("the bytes are not an image", func() {
		It("should return an error", func() {
			_, err := DecodeImage([]byte("not an image"), "image/png")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("isHEICFormat", func() {
	It("should recognize the ftyp brands", func() {
		Expect(isHEICFormat([]byte("\x00\x00\x00\x18ftypheic0000"))).To(BeTrue())
		Expect(isHEICFormat([]byte("\x00\x00\x00\x18ftypmif10000"))).To(BeTrue())
	})

	It("should reject other data", func() {
		Expect(isHEICFormat([]byte("\x89PNG\r\n\x1a\n00000000"))).To(BeFalse())
		Expect(isHEICFormat([]byte("short"))).To(BeFalse())
	})
})
