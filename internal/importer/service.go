package importer

import (
	"fmt"
	"io"

	"github.com/ptorrado/predio/internal/importer/cgd"
	"github.com/ptorrado/predio/internal/payment"
)

type Service struct {
	cgdImporter Importer
}

func NewService() *Service {
	return &Service{
		cgdImporter: cgd.NewParser(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]payment.Receipt, error) {
	var importer Importer

	switch bank {
	case BankCGD:
		importer = s.cgdImporter
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return importer.Parse(r)
}
