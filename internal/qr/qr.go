// Package qr renders credential payloads as QR PNG images and reads them back.
package qr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"

	"github.com/dtroode/idwallet-server/internal/model"
)

// Size is the edge length of generated images in pixels.
const Size = 256

// BuildPayload returns the canonical JSON embedded in a credential QR code.
func BuildPayload(accountID int64, naturalID string, kind model.IdentityKind) ([]byte, error) {
	payload, err := json.Marshal(model.CredentialPayload{
		AccountID: accountID,
		NaturalID: naturalID,
		Kind:      kind,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credential payload: %w", err)
	}
	return payload, nil
}

// Encode renders payload as a PNG. Equal payloads produce equal images.
func Encode(payload []byte) ([]byte, error) {
	png, err := qrcode.Encode(string(payload), qrcode.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// Decode extracts the payload from a QR PNG.
func Decode(png []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to read bitmap: %w", err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode qr code: %w", err)
	}

	return []byte(result.GetText()), nil
}

// ParsePayload decodes a QR PNG into the credential payload it carries.
func ParsePayload(png []byte) (model.CredentialPayload, error) {
	raw, err := Decode(png)
	if err != nil {
		return model.CredentialPayload{}, err
	}

	var payload model.CredentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.CredentialPayload{}, fmt.Errorf("failed to unmarshal credential payload: %w", err)
	}
	return payload, nil
}
