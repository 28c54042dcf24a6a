package domain

// Password is either "no password" or a user-supplied secret. The empty string
// convention used by settings and command-line flags is translated only by
// PasswordFromString and Password.String.
type Password struct {
	secret []byte
	set    bool
}

// NoPassword means the caller did not supply a password.
func NoPassword() Password { return Password{} }

// UserPassword wraps a caller-chosen secret. An empty secret is NoPassword.
func UserPassword(secret []byte) Password {
	if len(secret) == 0 {
		return Password{}
	}
	return Password{secret: append([]byte(nil), secret...), set: true}
}

// PasswordFromString converts the storage/flag representation. Reveal is the
// inverse.
func PasswordFromString(s string) Password {
	return UserPassword([]byte(s))
}

// IsSet reports whether a password was supplied.
func (p Password) IsSet() bool { return p.set }

// Bytes returns the secret, or nil for NoPassword.
func (p Password) Bytes() []byte { return p.secret }

// Reveal returns the secret as a string, "" for NoPassword.
func (p Password) Reveal() string { return string(p.secret) }

// String keeps the secret out of logs and %v output.
func (p Password) String() string {
	if p.set {
		return "<redacted>"
	}
	return "<none>"
}

// GoString keeps the secret out of %#v output.
func (p Password) GoString() string { return "domain.Password(" + p.String() + ")" }
