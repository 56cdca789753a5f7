package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType menentukan jenis klien dari header X-Client-Type,
// jatuh ke deteksi User-Agent sederhana bila header kosong.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(clientHeader) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") {
		return ClientMobile
	}
	return ClientWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
