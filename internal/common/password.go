package common

import "unicode/utf8"

// PasswordTooShort reports whether pw has fewer than MinPasswordLength
// characters. Characters are counted, not bytes.
func PasswordTooShort(pw string) bool {
	return utf8.RuneCountInString(pw) < MinPasswordLength
}
