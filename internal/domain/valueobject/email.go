package valueobject

import (
	"regexp"
	"strings"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

const (
	emailMaxLength       = 320
	emailLocalMaxLength  = 64
	emailDomainMaxLength = 255
	emailLabelMaxLength  = 63
)

var (
	emailLocalPattern = regexp.MustCompile("^[\\w.!#$%&'*+/=?^`{|}~-]+$")
	emailLabelPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	emailTLDPattern   = regexp.MustCompile(`^[a-z]{2,}$`)
)

type Email struct {
	value    string
	verified bool
}

// NewEmail normalizes raw (trim + lowercase) and validates it.
func NewEmail(raw string, model Model, ownerID *ID) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if !validEmail(v) {
		return Email{}, apperror.InvalidEmail(model.String(), raw, ownerRef(ownerID))
	}
	return Email{value: v}, nil
}

func (e Email) Value() string    { return e.value }
func (e Email) String() string   { return e.value }
func (e Email) IsVerified() bool { return e.verified }
func (e Email) Equal(o Email) bool {
	return e.value == o.value
}

func validEmail(v string) bool {
	if v == "" || len(v) > emailMaxLength {
		return false
	}
	if strings.Count(v, "@") != 1 || strings.HasPrefix(v, "@") || strings.HasSuffix(v, "@") {
		return false
	}
	if strings.Contains(v, "..") {
		return false
	}
	local, domain, _ := strings.Cut(v, "@")
	return validEmailLocal(local) && validEmailDomain(domain)
}

func validEmailLocal(local string) bool {
	if len(local) > emailLocalMaxLength || !emailLocalPattern.MatchString(local) {
		return false
	}
	return !strings.HasPrefix(local, ".") && !strings.HasSuffix(local, ".")
}

func validEmailDomain(domain string) bool {
	if len(domain) > emailDomainMaxLength || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" || len(label) > emailLabelMaxLength || !emailLabelPattern.MatchString(label) {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return emailTLDPattern.MatchString(labels[len(labels)-1])
}
