package referral

// MaskCode esconde o miolo do código para logging: códigos com mais de 4
// caracteres mostram os 2 primeiros e os 2 últimos; os demais só o primeiro.
// O código bruto nunca deve aparecer em log.
func MaskCode(code string) string {
	if len(code) > 4 {
		return code[:2] + "***" + code[len(code)-2:]
	}
	if code == "" {
		return "***"
	}
	return code[:1] + "***"
}
