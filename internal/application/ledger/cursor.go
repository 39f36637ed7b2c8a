package ledger

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Cursor opaco para el escaneo del historial: base64 de
// "createdAt(RFC3339Nano)|entryID". Es sin estado del lado servidor:
// el cliente puede reanudar en cualquier momento sin huecos ni duplicados.

// EncodeCursor serializa la posición de reanudación.
func EncodeCursor(c repository.HistoryCursor) string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.EntryID
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor deserializa un cursor recibido del cliente.
// Cadena vacía = sin cursor (desde el inicio).
func DecodeCursor(s string) (*repository.HistoryCursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: cursor malformado", domain.ErrInvalidInput)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("%w: cursor malformado", domain.ErrInvalidInput)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: cursor malformado", domain.ErrInvalidInput)
	}
	return &repository.HistoryCursor{CreatedAt: ts, EntryID: parts[1]}, nil
}
