package service_test

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

type txRow struct {
	step       int
	amount     float64
	account    string
	oldBalance float64
	newBalance float64
}

func ledger(rows ...txRow) dataframe.DataFrame {
	var (
		steps    = make([]int, len(rows))
		amounts  = make([]float64, len(rows))
		accounts = make([]string, len(rows))
		olds     = make([]float64, len(rows))
		news     = make([]float64, len(rows))
	)
	for i, r := range rows {
		steps[i] = r.step
		amounts[i] = r.amount
		accounts[i] = r.account
		olds[i] = r.oldBalance
		news[i] = r.newBalance
	}
	return dataframe.New(
		series.New(steps, series.Int, dataset.ColStep),
		series.New(amounts, series.Float, dataset.ColAmount),
		series.New(accounts, series.String, dataset.ColNameOrig),
		series.New(olds, series.Float, dataset.ColOldBalanceOrig),
		series.New(news, series.Float, dataset.ColNewBalanceOrig),
	)
}

// scenarioLedger has three equal transactions for A1 and two diverging ones for A2.
func scenarioLedger() dataframe.DataFrame {
	return ledger(
		txRow{step: 1, amount: 100, account: "A1", oldBalance: 1000, newBalance: 900},
		txRow{step: 2, amount: 100, account: "A1", oldBalance: 900, newBalance: 800},
		txRow{step: 30, amount: 100, account: "A1", oldBalance: 800, newBalance: 700},
		txRow{step: 5, amount: 10, account: "A2", oldBalance: 5000, newBalance: 4990},
		txRow{step: 6, amount: 1000, account: "A2", oldBalance: 4990, newBalance: 4990},
	)
}

func emptyLedger() dataframe.DataFrame {
	return ledger()
}
