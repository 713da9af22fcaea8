package cryptox

import (
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
)

// ParseKey turns configured key material into a KeySize key. Accepted forms
// are exactly KeySize raw bytes or 2*KeySize hex characters.
func ParseKey(material string) ([]byte, error) {
	switch len(material) {
	case KeySize:
		return []byte(material), nil
	case 2 * KeySize:
		key, err := hex.DecodeString(material)
		if err != nil {
			return nil, fmt.Errorf("%w: encryption key is not valid hex", common.ErrFatalConfiguration)
		}
		return key, nil
	case 0:
		return nil, fmt.Errorf("%w: encryption key is required", common.ErrFatalConfiguration)
	default:
		return nil, fmt.Errorf("%w: encryption key must be %d bytes or %d hex characters, got %d characters",
			common.ErrFatalConfiguration, KeySize, 2*KeySize, len(material))
	}
}
