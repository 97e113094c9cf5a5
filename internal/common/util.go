package common

// WipeByteArray overwrites b with zeros. It is used to scrub passwords read
// from the terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return BearerScheme + " " + token
}
