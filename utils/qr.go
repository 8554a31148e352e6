package utils

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCode returns a PNG encoded QR code for content.
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RoomPortalURL is the guest portal link printed on a room's QR card.
func RoomPortalURL(baseURL, hotelSlug, roomNumber string) string {
	return fmt.Sprintf("%s/%s/rooms/%s", strings.TrimRight(baseURL, "/"), url.PathEscape(hotelSlug), url.PathEscape(roomNumber))
}
