package encode

import "strings"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Base64 encodes s (as UTF-8 bytes) into standard base64, built up from
// byte triplets so the blob transport does not lean on any platform codec.
func Base64(s string) string {
	b := []byte(s)
	var out strings.Builder
	out.Grow((len(b) + 2) / 3 * 4)
	i := 0
	for ; i+3 <= len(b); i += 3 {
		n := uint32(b[i])<<16 | uint32(b[i+1])<<8 | uint32(b[i+2])
		out.WriteByte(alphabet[n>>18&0x3f])
		out.WriteByte(alphabet[n>>12&0x3f])
		out.WriteByte(alphabet[n>>6&0x3f])
		out.WriteByte(alphabet[n&0x3f])
	}
	switch len(b) - i {
	case 1:
		n := uint32(b[i]) << 16
		out.WriteByte(alphabet[n>>18&0x3f])
		out.WriteByte(alphabet[n>>12&0x3f])
		out.WriteString("==")
	case 2:
		n := uint32(b[i])<<16 | uint32(b[i+1])<<8
		out.WriteByte(alphabet[n>>18&0x3f])
		out.WriteByte(alphabet[n>>12&0x3f])
		out.WriteByte(alphabet[n>>6&0x3f])
		out.WriteByte('=')
	}
	return out.String()
}

// DecodeBase64 reverses Base64. Invalid input yields ok=false.
func DecodeBase64(s string) (string, bool) {
	s = strings.TrimRight(s, "=")
	var out []byte
	var n uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return "", false
		}
		n = n<<6 | uint32(v)
		bits += 6
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(n>>uint(bits)))
		}
	}
	return string(out), true
}
