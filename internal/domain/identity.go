package domain

// Identity is the long-term key pair of an account in plaintext form. It only
// exists transiently: while generating a new account, and between unsealing
// key material and moving it into a PersonalKey.
type Identity struct {
	EdSeed Ed25519Seed
	EdPub  Ed25519Public
	XPriv  X25519Private
	XPub   X25519Public
}
