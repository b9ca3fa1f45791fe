package referral

import (
	"math"
	"strconv"
	"strings"
)

const (
	StatusFound    = 200
	StatusNotFound = 404
)

const (
	MsgValid          = "Referral code is valid."
	MsgValidNoDetails = "Referral code is valid, but no user details were returned."
	MsgNotFound       = "Referral code not found."
	MsgUnexpected     = "Unexpected response from referral service."
)

// Metadata carrega apenas os campos presentes e bem formados no payload.
type Metadata struct {
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	ReferralCode string   `json:"referral_code,omitempty"`
	Usage        *float64 `json:"usage,omitempty"`
	RowNumber    *float64 `json:"row_number,omitempty"`
}

func (m *Metadata) empty() bool {
	return m.Name == "" && m.Email == "" && m.Phone == "" &&
		m.ReferralCode == "" && m.Usage == nil && m.RowNumber == nil
}

// Outcome é o resultado canônico de uma (payload, status) do upstream.
// Valid nil significa indeterminado: o upstream respondeu algo que não é
// nem o código de sucesso nem o de não-encontrado.
type Outcome struct {
	Valid       *bool
	Message     string
	Eligibility string
	Metadata    *Metadata
}

// Normalize mapeia um payload arbitrário do upstream para o formato
// canônico. É pura e total: campo malformado vira ausente, nunca erro.
func Normalize(raw map[string]any, status int) Outcome {
	var valid *bool
	switch status {
	case StatusFound:
		valid = boolPtr(true)
	case StatusNotFound:
		valid = boolPtr(false)
	}

	meta := &Metadata{
		Name:         firstString(raw, "first_name", "name"),
		Email:        firstString(raw, "email"),
		Phone:        firstString(raw, "phone"),
		ReferralCode: firstString(raw, "referral_code", "code"),
		Usage:        optNumber(raw["usage"]),
		RowNumber:    optNumber(raw["row_number"]),
	}

	hasUserDetails := meta.Name != "" || meta.Email != "" || meta.Phone != ""

	var eligibility string
	if valid != nil && *valid {
		if hasUserDetails {
			eligibility = "Eligible"
		} else {
			eligibility = "Details unavailable"
		}
	}

	out := Outcome{
		Valid:       valid,
		Message:     firstString(raw, "message"),
		Eligibility: eligibility,
	}
	if out.Message == "" {
		out.Message = fallbackMessage(valid, hasUserDetails)
	}
	if !meta.empty() {
		out.Metadata = meta
	}
	return out
}

func fallbackMessage(valid *bool, hasUserDetails bool) string {
	switch {
	case valid == nil:
		return MsgUnexpected
	case !*valid:
		return MsgNotFound
	case hasUserDetails:
		return MsgValid
	default:
		return MsgValidNoDetails
	}
}

// firstString devolve o primeiro campo que seja string não vazia após trim.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := optString(raw[k]); ok {
			return s
		}
	}
	return ""
}

func optString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// optNumber aceita número nativo ou string numérica; qualquer coisa que não
// resulte em número finito vira ausente.
func optNumber(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func boolPtr(b bool) *bool { return &b }
