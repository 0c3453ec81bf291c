package valueobject

import (
	"regexp"
	"strings"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

var (
	whatsAppNoise         = regexp.MustCompile(`[^\d+]`)
	whatsAppInternational = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
	whatsAppNational      = regexp.MustCompile(`^[1-9]\d{6,14}$`)
)

type WhatsApp struct {
	value string
}

// NewWhatsApp strips formatting characters and keeps the cleaned number,
// e.g. "+1 (234) 567-8900" becomes "+12345678900".
func NewWhatsApp(raw string, model Model, ownerID *ID) (WhatsApp, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return WhatsApp{}, apperror.InvalidWhatsApp(model.String(), raw, ownerRef(ownerID))
	}
	cleaned := whatsAppNoise.ReplaceAllString(trimmed, "")
	pattern := whatsAppNational
	if strings.HasPrefix(cleaned, "+") {
		pattern = whatsAppInternational
	}
	if !pattern.MatchString(cleaned) {
		return WhatsApp{}, apperror.InvalidWhatsApp(model.String(), raw, ownerRef(ownerID))
	}
	return WhatsApp{value: cleaned}, nil
}

func (w WhatsApp) Value() string  { return w.value }
func (w WhatsApp) String() string { return w.value }
func (w WhatsApp) Equal(o WhatsApp) bool {
	return w.value == o.value
}
