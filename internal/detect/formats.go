package detect

import (
	"strings"

	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/model"
)

// Formats returns the built-in export layouts in evaluation order. New
// layouts are appended; earlier entries take precedence.
func Formats() []Format {
	return []Format{
		wellsFargo,
		americanExpress,
		bankOfAmericaCredit,
		bankOfAmericaChecking,
		usaa,
		citi,
		capitalOneCredit,
		capitalOneChecking,
		discover,
		chaseChecking,
		chaseCredit,
		ofxStatement,
		debitCreditColumns,
	}
}

var wellsFargo = Format{
	Label: "Wells Fargo",
	Test:  "headerless, 5 columns, column 3 is *",
	Hint:  model.AccountChecking,
	Match: func(s Signature) bool {
		return !s.HasHeader && len(s.FirstRow) == 5 && strings.TrimSpace(s.FirstRow[2]) == "*"
	},
	Mapping: func(Signature) model.ColumnMapping {
		return model.SingleAmountMapping(0, 4, 1, fieldparse.DateMDY)
	},
}

// American Express exports charges as positive amounts.
var americanExpress = Format{
	Label: "American Express",
	Test:  `header "Card Member"`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool { return s.Has("card member") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SingleAmountMapping(s.IndexOr("date", 0), s.IndexOr("description", 1), s.Index("amount"), fieldparse.DateMDY)
	},
}

var bankOfAmericaCredit = Format{
	Label: "Bank of America Credit Card",
	Test:  `headers "Reference Number" and "Address"`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool { return s.Has("reference number") && s.Has("address") },
	Mapping: func(s Signature) model.ColumnMapping {
		m := model.SingleAmountMapping(s.IndexOr("posted date", 0), s.IndexOr("payee", 2), s.Index("amount"), fieldparse.DateMDY)
		m.KeepSign = true
		return m
	},
}

var bankOfAmericaChecking = Format{
	Label: "Bank of America Checking",
	Test:  `a header containing "Running Bal"`,
	Hint:  model.AccountChecking,
	Match: func(s Signature) bool { return s.Contains("running bal") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SingleAmountMapping(s.IndexOr("date", 0), s.IndexOr("description", 1), s.Index("amount"), fieldparse.DateMDY)
	},
}

var usaa = Format{
	Label: "USAA",
	Test:  `header "Original Description"`,
	Hint:  model.AccountChecking,
	Match: func(s Signature) bool { return s.Has("original description") },
	Mapping: func(s Signature) model.ColumnMapping {
		m := model.SingleAmountMapping(s.IndexOr("date", 0), s.IndexOr("description", 1), s.Index("amount"), fieldparse.DateMDY)
		m.OriginalDescription = s.Index("original description")
		return m
	},
}

var citi = Format{
	Label: "Citi",
	Test:  `first header "Status" with "Debit" and "Credit"`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool { return s.FirstIs("status") && s.Has("debit") && s.Has("credit") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SplitAmountMapping(s.IndexOr("date", 1), s.IndexOr("description", 2), s.Index("debit"), s.Index("credit"), fieldparse.DateMDY)
	},
}

var capitalOneCredit = Format{
	Label: "Capital One Credit Card",
	Test:  `header "Card No."`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool { return s.Has("card no.") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SplitAmountMapping(s.IndexOr("transaction date", 0), s.IndexOr("description", 3), s.Index("debit"), s.Index("credit"), fieldparse.DateISO)
	},
}

var capitalOneChecking = Format{
	Label: "Capital One Checking",
	Test:  `first header "Account Number" with "Transaction Amount"`,
	Hint:  model.AccountChecking,
	Match: func(s Signature) bool { return s.FirstIs("account number") && s.Has("transaction amount") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SingleAmountMapping(s.IndexOr("transaction date", 1), s.IndexOr("transaction description", 4), s.Index("transaction amount"), fieldparse.DateMDY)
	},
}

var discover = Format{
	Label: "Discover",
	Test:  `a header containing "Trans. Date"`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool { return s.Contains("trans. date") || s.Contains("trans.date") },
	Mapping: func(s Signature) model.ColumnMapping {
		m := model.SingleAmountMapping(0, s.IndexOr("description", 2), s.Index("amount"), fieldparse.DateMDY)
		m.KeepSign = true
		return m
	},
}

var chaseChecking = Format{
	Label: "Chase Checking",
	Test:  `header "Details" and a header containing "Check or Slip"`,
	Hint:  model.AccountChecking,
	Match: func(s Signature) bool { return s.Has("details") && s.Contains("check or slip") },
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SingleAmountMapping(s.IndexOr("posting date", 1), s.IndexOr("description", 2), s.Index("amount"), fieldparse.DateMDY)
	},
}

var chaseCredit = Format{
	Label: "Chase Credit Card",
	Test:  `headers "Transaction Date", "Post Date" and "Type"`,
	Hint:  model.AccountCreditCard,
	Match: func(s Signature) bool {
		return s.Has("transaction date") && s.Has("post date") && s.Has("type")
	},
	Mapping: func(s Signature) model.ColumnMapping {
		m := model.SingleAmountMapping(s.IndexOr("transaction date", 0), s.IndexOr("description", 2), s.Index("amount"), fieldparse.DateMDY)
		m.KeepSign = true
		return m
	},
}

// ofxStatement matches tables built by table.ParseOFX.
var ofxStatement = Format{
	Label: "OFX/QFX Statement",
	Test:  `header "FITID"`,
	Match: func(s Signature) bool { return s.Has("fitid") },
	Mapping: func(s Signature) model.ColumnMapping {
		m := model.SingleAmountMapping(s.Index("date"), s.Index("payee"), s.Index("amount"), fieldparse.DateISO)
		m.OriginalDescription = s.Index("name")
		m.KeepSign = true
		return m
	},
}

var debitCreditColumns = Format{
	Label: "Debit/Credit Columns",
	Test:  `headers "Date", "Description", "Debit" and "Credit"`,
	Match: func(s Signature) bool {
		return s.Has("date") && s.Has("description") && s.Has("debit") && s.Has("credit")
	},
	Mapping: func(s Signature) model.ColumnMapping {
		return model.SplitAmountMapping(s.Index("date"), s.Index("description"), s.Index("debit"), s.Index("credit"), fieldparse.DateMDY)
	},
}
