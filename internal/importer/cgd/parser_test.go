package cgd_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ptorrado/predio/internal/importer/cgd"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Conta(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-03-2026;"=""0000"""
Nome cliente;PREDIO GESTAO LDA
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;12.000,00 EUR
Saldo disponível;12.000,00 EUR

Dados da consulta
Período;Últimos 90 dias
Intervalo de;01-03-2026 a 31-03-2026
Tipos de movimento;Todos

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-03-2026;30-03-2026;CONDOMINIO EDIFICIO;-588,74;11.411,26
05-03-2026;05-03-2026;TRF ANA MARTINS RENDA;1.200,00;12.000,00
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	// The condominium debit is dropped, only the rent credit survives.
	require.Len(t, receipts, 1)
	assert.Equal(t, date(2026, 3, 5), receipts[0].Date)
	assert.Equal(t, "TRF ANA MARTINS RENDA", receipts[0].Description)
	assert.Equal(t, int64(120000), receipts[0].Amount)
}

func TestParser_Extrato(t *testing.T) {
	csv := `Consultar extrato - 15-04-2026 : 0829015676030
Nome empresa ;PREDIO GESTAO LDA
NIF ;517948974
Conta ;0829015676030 - EUR - Conta Extracto
Intervalo de ;01-04-2026 a 14-04-2026
Tipos de movimento ;Todos
Saldo contabilístico Inicial ;11.411,26
Saldo contabilístico final ;13.561,26

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-04-2026;13-04-2026;"=""0003""";PAGAMENTO AGUAS ;-100,00;  ;13.561,26;
04-04-2026;04-04-2026;SIBS ;TRF JOAO SILVA ;2.250,00;  ;13.661,26;
02-04-2026;02-04-2026;SIBS ;TRF MARIA COSTA ;950,00;  ;11.411,26;
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, receipts, 2)

	assert.Equal(t, date(2026, 4, 4), receipts[0].Date)
	assert.Equal(t, "TRF JOAO SILVA", receipts[0].Description)
	assert.Equal(t, int64(225000), receipts[0].Amount)

	assert.Equal(t, date(2026, 4, 2), receipts[1].Date)
	assert.Equal(t, "TRF MARIA COSTA", receipts[1].Description)
	assert.Equal(t, int64(95000), receipts[1].Amount)
}

func TestParser_Cartao(t *testing.T) {
	csv := `Consultar saldos e movimentos de cartões - 15-04-2026
Nome empresa ;PREDIO GESTAO LDA
NIF ;517948974

Conta cartão ;4163 **** **** 8016 - EUR - Business Débito
Tipo de movimentos ;Conta à ordem
Desde ;15/02/2026

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-03-2026 ;14-03-2026 ;LEROY MERLIN GONDOMAR ;64,00 ; ;
31-03-2026 ;29-03-2026 ;ESTORNO SEGURO ; ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	// Only the credit column row is kept.
	require.Len(t, receipts, 1)
	assert.Equal(t, date(2026, 3, 31), receipts[0].Date)
	assert.Equal(t, "ESTORNO SEGURO", receipts[0].Description)
	assert.Equal(t, int64(2500), receipts[0].Amount)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-03-2026;TRF JOÃO SILVA;1.200,00\n"

	encoder := charmap.Windows1252.NewEncoder()
	latin1Bytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := cgd.NewParser()
	receipts, err := p.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	assert.Equal(t, "TRF JOÃO SILVA", receipts[0].Description)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Montante;Descrição;Data mov.;Ignored
10,00;TEST_ORDER;30-03-2026;XXX
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	assert.Equal(t, "TEST_ORDER", receipts[0].Description)
	assert.Equal(t, int64(1000), receipts[0].Amount)
}

func TestParser_EmptyFile(t *testing.T) {
	p := cgd.NewParser()
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching CGD format")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Data mov.;Data-valor;Descrição;Montante`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-03-2026;;10,00
`

	p := cgd.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestParser_DebitsOnlyYieldsNothing(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-03-2026;PAGAMENTO LUZ;-45,10
29-03-2026;PAGAMENTO AGUA;-22,00
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestParser_LargeAmounts(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-03-2026;VENDA FRACAO;1.234.567,89
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	assert.Equal(t, int64(123456789), receipts[0].Amount)
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-03-2026;TRF RENDA;10,00
Totais;;;;
`

	p := cgd.NewParser()
	receipts, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}
