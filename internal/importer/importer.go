package importer

import (
	"io"

	"github.com/ptorrado/predio/internal/payment"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Importer parses a bank statement export into the credit lines it
// contains. Debits are not relevant for rent reconciliation and are
// dropped during parsing.
type Importer interface {
	Parse(r io.Reader) ([]payment.Receipt, error)
}
