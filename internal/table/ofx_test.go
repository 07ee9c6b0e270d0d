package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POS PURCHASE STARBUCKS #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012001
<NAME>PAYROLL
<MEMO>ACME CORP
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseOFX(t *testing.T) {
	got, err := ParseOFX(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	assert.True(t, got.HasHeader)
	assert.Equal(t, OFXHeader, got.Header())
	require.Len(t, got.DataRows(), 2)

	first := got.DataRows()[0]
	assert.Equal(t, "2024-01-15", first[0])
	assert.Equal(t, "STARBUCKS #1234", first[1])
	assert.Equal(t, "POS PURCHASE STARBUCKS #1234", first[2])
	assert.Equal(t, "-25.5", first[4])
	assert.Equal(t, "DEBIT", first[5])
	assert.Equal(t, "2024011501", first[6])

	second := got.DataRows()[1]
	assert.Equal(t, "PAYROLL", second[1])
	assert.Equal(t, "ACME CORP", second[3])
	assert.Equal(t, "1500", second[4])
}

func TestParseOFX_Invalid(t *testing.T) {
	_, err := ParseOFX(strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	in := "\n\n<SEVERITY>Info</SEVERITY>\n<BANKTRANLIST\n"
	out := preprocessOFX(in)
	assert.Contains(t, out, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, out, "<BANKTRANLIST>")
	assert.False(t, strings.HasPrefix(out, "\n"))
}
