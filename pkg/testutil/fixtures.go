package testutil

import (
	"fmt"
	"strings"
)

// LedgerHeader is the column order of a raw transaction export.
const LedgerHeader = "step,type,amount,nameOrig,oldbalanceOrg,newbalanceOrig,nameDest,oldbalanceDest,newbalanceDest,isFraud,isFlaggedFraud"

// LedgerRow is one raw transaction line.
type LedgerRow struct {
	Type       string
	Account    string
	Dest       string
	Amount     float64
	OldBalance float64
	NewBalance float64
	Step       int
	IsFraud    int
}

// LedgerCSV renders rows under LedgerHeader.
func LedgerCSV(rows ...LedgerRow) string {
	var b strings.Builder
	b.WriteString(LedgerHeader)
	b.WriteByte('\n')
	for _, r := range rows {
		typ := r.Type
		if typ == "" {
			typ = "TRANSFER"
		}
		dest := r.Dest
		if dest == "" {
			dest = "M0"
		}
		fmt.Fprintf(&b, "%d,%s,%g,%s,%g,%g,%s,0,0,%d,0\n",
			r.Step, typ, r.Amount, r.Account, r.OldBalance, r.NewBalance, dest, r.IsFraud)
	}
	return b.String()
}

// ScenarioRows are three identical payments from A1 and two diverging ones
// from A2. Scored with the default policy only the last row reaches High Risk.
func ScenarioRows() []LedgerRow {
	return []LedgerRow{
		{Step: 1, Amount: 100, Account: "A1", OldBalance: 1000, NewBalance: 900},
		{Step: 2, Amount: 100, Account: "A1", OldBalance: 900, NewBalance: 800},
		{Step: 30, Amount: 100, Account: "A1", OldBalance: 800, NewBalance: 700},
		{Step: 5, Amount: 10, Account: "A2", OldBalance: 5000, NewBalance: 4990},
		{Step: 6, Amount: 1000, Account: "A2", OldBalance: 4990, NewBalance: 4990, IsFraud: 1},
	}
}

// ScenarioCSV is LedgerCSV(ScenarioRows()...).
func ScenarioCSV() string {
	return LedgerCSV(ScenarioRows()...)
}
