package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	cryptoutil "hrdesk/internal/platform/crypto"
)

const mfaIssuer = "False 9 2 5 HR"

// MFA handles TOTP enrolment. Secrets are sealed with the data encryption
// key before they are stored on the employee row.
type MFA struct {
	Crypto *cryptoutil.Service
	Now    func() time.Time
}

func NewMFA(crypto *cryptoutil.Service) *MFA {
	return &MFA{Crypto: crypto, Now: time.Now}
}

func (m *MFA) Available() bool {
	return m != nil && m.Crypto != nil && m.Crypto.Configured()
}

type Enrolment struct {
	Secret     string
	URL        string
	SealedSeed []byte
}

func (m *MFA) Enrol(accountName string) (Enrolment, error) {
	if !m.Available() {
		return Enrolment{}, ErrMFAUnavailable
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return Enrolment{}, err
	}
	sealed, err := m.Crypto.EncryptString(key.Secret())
	if err != nil {
		return Enrolment{}, err
	}
	return Enrolment{Secret: key.Secret(), URL: key.URL(), SealedSeed: sealed}, nil
}

// Verify checks code against a sealed secret.
func (m *MFA) Verify(code string, sealed []byte) error {
	if !m.Available() {
		return ErrMFAUnavailable
	}
	if len(sealed) == 0 {
		return ErrMFANotEnrolled
	}
	secret, err := m.Crypto.DecryptString(sealed)
	if err != nil || secret == "" {
		return ErrMFANotEnrolled
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	ok, err := totp.ValidateCustom(code, secret, now, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return ErrMFACodeInvalid
	}
	return nil
}
