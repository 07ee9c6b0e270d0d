package table

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// OFXHeader is the column layout of tables built from OFX/QFX statements.
// FITID only ever appears in OFX-derived tables.
var OFXHeader = []string{"Date", "Payee", "Name", "Memo", "Amount", "Type", "FITID"}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML-style opening tags missing their closing bracket at end of line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank-produced OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseOFX converts every bank and credit card statement in an OFX/QFX
// document into rows of a single table. Amounts keep the OFX sign, where
// negative is money out.
func ParseOFX(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	rows := [][]string{OFXHeader}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			for _, tx := range stmt.BankTranList.Transactions {
				rows = append(rows, ofxRow(tx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			for _, tx := range stmt.BankTranList.Transactions {
				rows = append(rows, ofxRow(tx))
			}
		}
	}

	if len(rows) == 1 {
		return nil, ErrEmpty
	}

	slog.Debug("Parsed OFX file",
		"transactions", len(rows)-1,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return &Table{Source: "ofx", Rows: rows, HasHeader: true}, nil
}

func ofxRow(tx ofxgo.Transaction) []string {
	amount := decimal.RequireFromString(tx.TrnAmt.FloatString(4))
	return []string{
		tx.DtPosted.Format("2006-01-02"),
		payeeName(tx),
		strings.TrimSpace(string(tx.Name)),
		strings.TrimSpace(string(tx.Memo)),
		amount.String(),
		tx.TrnType.String(),
		string(tx.FiTID),
	}
}

var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// payeeName picks the cleanest display name an OFX transaction offers.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " authorization dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
