package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType menentukan jenis client dari header eksplisit,
// fallback ke User-Agent kalau header tidak dikirim.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") {
		return ClientWeb
	}
	return ClientMobile
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
