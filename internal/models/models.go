package models

// Envelope é a resposta uniforme do endpoint de validação. Valid usa
// ponteiro porque null ("indeterminado") é um estado significativo e o campo
// aparece sempre, mesmo quando nulo.
type Envelope struct {
	OK          bool   `json:"ok"`
	Valid       *bool  `json:"valid"`
	Message     string `json:"message,omitempty"`
	Eligibility string `json:"eligibility,omitempty"`
	Metadata    any    `json:"metadata,omitempty"`
	Raw         any    `json:"raw,omitempty"`
}

// ErrorEnvelope monta o envelope padrão de falha: ok=false, valid=null.
func ErrorEnvelope(message string) Envelope {
	return Envelope{OK: false, Valid: nil, Message: message}
}

// MockMetadata é o metadata devolvido pelo caminho mock.
type MockMetadata struct {
	Code  string `json:"code"`
	Owner string `json:"owner"`
	Notes string `json:"notes"`
}

// MockRaw simula o payload bruto do upstream no caminho mock.
type MockRaw struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Mock   bool   `json:"mock"`
}
