package aadhaar

import (
	"errors"
	"regexp"
	"strings"
)

// rootElement is the root element of the plain-XML Aadhaar QR payload.
const rootElement = "PrintLetterBarcodeData"

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// ErrMalformedPayload means the raw scan text is empty or unusable.
var ErrMalformedPayload = errors.New("empty or unusable QR payload")

// Hardware scanners and some camera pipelines wrap the payload in noise.
// declFragment captures the first declaration-to-closing-tag fragment;
// rootFragment the first bare root element, including the self-closing form.
var (
	declFragment = regexp.MustCompile(`(?is)<\?xml.*?</` + rootElement + `\s*>`)
	rootFragment = regexp.MustCompile(`(?is)<` + rootElement + `.*?(?:</` + rootElement + `\s*>|/>)`)
)

// Normalize repairs raw scanned text into something an XML parser can
// attempt: surrounding noise is stripped and a missing XML declaration is
// prepended. It does not validate well-formedness.
func Normalize(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", ErrMalformedPayload
	}

	if !strings.HasPrefix(cleaned, "<?xml") && !strings.HasPrefix(cleaned, "<"+rootElement) {
		if match := declFragment.FindString(cleaned); match != "" {
			cleaned = match
		} else if match := rootFragment.FindString(cleaned); match != "" {
			cleaned = match
		}
	}

	if !strings.HasPrefix(cleaned, "<?xml") {
		cleaned = xmlDeclaration + cleaned
	}

	return cleaned, nil
}
