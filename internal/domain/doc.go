// Package domain defines the account credential types shared across the app:
// the password variant, the unlocked PersonalKey, the error taxonomy and the
// contracts between the credential manager and its collaborators.
package domain
