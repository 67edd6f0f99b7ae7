// Package upi renders UPI payment links as QR codes.
package upi

import (
	"fmt"
	"net/url"

	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

type QR struct {
	PayeeVPA  string
	PayeeName string
	Size      int // pixels, default 256
}

func New(vpa, name string) *QR {
	return &QR{PayeeVPA: vpa, PayeeName: name, Size: 256}
}

// Link is the upi://pay URI any UPI app understands.
func (q *QR) Link(orderNumber string, amount decimal.Decimal) string {
	v := url.Values{}
	v.Set("pa", q.PayeeVPA)
	v.Set("pn", q.PayeeName)
	v.Set("am", amount.StringFixed(2))
	v.Set("cu", "INR")
	v.Set("tn", "Order "+orderNumber)
	return "upi://pay?" + v.Encode()
}

// PaymentQR returns the link and a PNG data URL of its QR code.
func (q *QR) PaymentQR(orderNumber string, amount decimal.Decimal) (link, dataURL string, err error) {
	link = q.Link(orderNumber, amount)
	size := q.Size
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return "", "", fmt.Errorf("encode qr: %w", err)
	}
	return link, utils.PNGDataURL(png), nil
}
