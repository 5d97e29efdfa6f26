package qr

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	qrcode "github.com/skip2/go-qrcode"
)

// Write renders the payment request as a PNG at path.
func Write(paymentRequest, path string) error {
	if err := qrcode.WriteFile(paymentRequest, qrcode.Medium, 256, path); err != nil {
		return fmt.Errorf("couldn't render QR code: %w", err)
	}
	return nil
}

// Show writes the payment request QR code to a temp file and opens it with
// the platform image viewer. Presentation only: a failure here must never
// fail the checkout.
func Show(paymentRequest string) error {
	path := filepath.Join(os.TempDir(), "checkout-qr-code.png")

	if err := Write(paymentRequest, path); err != nil {
		return err
	}

	return open(path)
}

func open(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("couldn't open QR code viewer: %w", err)
	}

	return nil
}
