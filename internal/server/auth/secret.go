package auth

import "github.com/dmitrijs2005/snipkeeper/internal/common"

// SigningSecretSize is the length of a generated signing secret.
const SigningSecretSize = 32

// ResolveSigningSecret returns the configured secret, or a fresh random one
// when none is configured. generated reports which case applied. A
// generated secret lives only for this process, so a restart invalidates
// every token issued before it.
func ResolveSigningSecret(configured string) (secret []byte, generated bool) {
	if configured != "" {
		return []byte(configured), false
	}
	return common.GenerateRandByteArray(SigningSecretSize), true
}
