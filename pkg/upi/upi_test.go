package upi

import (
	"strings"
	"testing"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentQR(t *testing.T) {
	q := New("biryaniclub@paytm", "Biryani Club")

	link, dataURL, err := q.PaymentQR("BC123456", entity.Rupees(195))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "upi://pay?"))
	assert.Contains(t, link, "am=195.00")
	assert.Contains(t, link, "pa=biryaniclub%40paytm")
	assert.Contains(t, link, "tn=Order+BC123456")
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}
