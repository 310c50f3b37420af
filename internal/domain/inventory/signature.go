package inventory

import (
	"strings"

	"github.com/semed-merenda/merenda-api/internal/domain"
)

// Prefixo mínimo exigido nos payloads de assinatura. O conteúdo da imagem é
// opaco para o domínio: só validamos a presença e esse marcador de formato.
const signatureDataPrefix = "data:image/"

// ValidateSignature valida um par assinatura+nome de signatário.
// O nome volta com espaços aparados.
func ValidateSignature(data, signerName string) (string, error) {
	if data == "" || !strings.HasPrefix(data, signatureDataPrefix) {
		return "", domain.ErrInvalidInput
	}
	name := strings.TrimSpace(signerName)
	if name == "" {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}
