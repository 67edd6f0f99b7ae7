// utils/base64.go
package utils

import "encoding/base64"

// PNGDataURL embeds a PNG so the frontend can use it directly as an <img> src.
func PNGDataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
