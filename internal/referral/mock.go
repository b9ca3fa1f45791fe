package referral

import "strings"

const (
	MsgMockValid   = "Referral code is valid (mock)."
	MsgMockInvalid = "Referral code is invalid (mock)."
)

// MockValid decide a validade em modo mock sem tocar o upstream: código
// terminando em "7" ou contendo "test" (sem distinguir caixa) é válido.
func MockValid(code string) bool {
	return strings.HasSuffix(code, "7") || strings.Contains(strings.ToLower(code), "test")
}
