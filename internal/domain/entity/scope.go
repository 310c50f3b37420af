package entity

// StockScope identifica o alvo de um saldo ou movimento de estoque:
// o estoque central da SEMED ou o estoque de uma escola específica.
// Variante etiquetada em vez de FK anulável, para que os desvios no razão
// e nos ajustes de conferência sejam exaustivos.
type StockScope struct {
	schoolID string
}

// CentralScope devolve o escopo do estoque central.
func CentralScope() StockScope { return StockScope{} }

// SchoolScope devolve o escopo do estoque de uma escola.
func SchoolScope(schoolID string) StockScope { return StockScope{schoolID: schoolID} }

// IsCentral indica se o escopo é o estoque central.
func (s StockScope) IsCentral() bool { return s.schoolID == "" }

// SchoolID devolve o ID da escola ("" para o estoque central).
func (s StockScope) SchoolID() string { return s.schoolID }
