package transactions

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graphprep-dev/graphprep/internal/model"
)

// RawHeader is the exact header row of a raw transactions export after the
// rename-headers pre-step has split the two Account columns.
const RawHeader = "Timestamp,From Bank,FromAccount,To Bank,ToAccount,Amount Received,Receiving Currency,Amount Paid,Payment Currency,Payment Format,Is Laundering"

const (
	rawNumFields   = 11
	colTimestamp   = 0
	colFromBank    = 1
	colFromAccount = 2
	colToBank      = 3
	colToAccount   = 4
	colAmtReceived = 5
	colRcvCurrency = 6
	colAmtPaid     = 7
	colPayCurrency = 8
	colPayFormat   = 9
	colLaundering  = 10
)

const (
	timestampLayout = "2006/01/02 15:04"
	isoLayout       = "2006-01-02T15:04:05"
)

// Output file names and headers. When split-by-date is enabled each file
// name is prefixed with the YYYY_MM_DD day key.
const (
	TransactionsFile = "transactions.csv"
	FromFile         = "transactions_from.csv"
	ToFile           = "transactions_to.csv"

	TransactionsHeader = "transaction_id:ID(Transaction),timestamp,timestamp_date:datetime,from_bank:int,from_account,to_bank:int,to_account,amount_received:float,receiving_currency,amount_paid:float,payment_currency,payment_format,is_laundering:boolean"
	EdgeHeader         = ":START_ID(Transaction),:END_ID(Account)"
)

const (
	outNumFields      = 13
	colOutID          = 0
	colOutTimestamp   = 1
	colOutDate        = 2
	colOutFromBank    = 3
	colOutFromAccount = 4
	colOutToBank      = 5
	colOutToAccount   = 6
	colOutAmtReceived = 7
	colOutRcvCurrency = 8
	colOutAmtPaid     = 9
	colOutPayCurrency = 10
	colOutPayFormat   = 11
	colOutLaundering  = 12
)

// ErrHeaderMismatch indicates the input file does not have the expected
// header row. This is structural and aborts the run.
var ErrHeaderMismatch = errors.New("unexpected CSV header")

func validateRawHeader(got []string) error {
	want := strings.Split(RawHeader, ",")
	if slices.Equal(got, want) {
		return nil
	}
	// The raw export names both account columns "Account" until the
	// rename-headers pre-step has run. Point the operator at it.
	accountCols := 0
	for _, h := range got {
		if h == "Account" {
			accountCols++
		}
	}
	if accountCols == 2 {
		return fmt.Errorf("%w: input has two %q columns; run rename-headers on it first", ErrHeaderMismatch, "Account")
	}
	return fmt.Errorf("%w: expected %q, got %q", ErrHeaderMismatch, want, got)
}

// rowProblem is a content problem on one input row. Missing required values
// are reported as skips, unparseable values as failures.
type rowProblem struct {
	field   string
	msg     string
	missing bool
}

// parseRow converts one raw record into a Transaction with the given
// synthesized ID. Whitespace is trimmed before any parsing.
func parseRow(rec []string, id int64) (model.Transaction, *rowProblem) {
	rawTimestamp := strings.TrimSpace(rec[colTimestamp])
	if rawTimestamp == "" {
		return model.Transaction{}, &rowProblem{field: "Timestamp", msg: "missing required value", missing: true}
	}
	ts, err := time.Parse(timestampLayout, rawTimestamp)
	if err != nil {
		return model.Transaction{}, &rowProblem{field: "Timestamp", msg: fmt.Sprintf("unparseable timestamp %q", rawTimestamp)}
	}

	fromAccount := strings.TrimSpace(rec[colFromAccount])
	if fromAccount == "" {
		return model.Transaction{}, &rowProblem{field: "FromAccount", msg: "missing required value", missing: true}
	}
	toAccount := strings.TrimSpace(rec[colToAccount])
	if toAccount == "" {
		return model.Transaction{}, &rowProblem{field: "ToAccount", msg: "missing required value", missing: true}
	}

	fromBank, err := strconv.Atoi(strings.TrimSpace(rec[colFromBank]))
	if err != nil {
		return model.Transaction{}, &rowProblem{field: "From Bank", msg: fmt.Sprintf("non-numeric bank id %q", rec[colFromBank])}
	}
	toBank, err := strconv.Atoi(strings.TrimSpace(rec[colToBank]))
	if err != nil {
		return model.Transaction{}, &rowProblem{field: "To Bank", msg: fmt.Sprintf("non-numeric bank id %q", rec[colToBank])}
	}

	// Amounts pass through as written, like timestamps: "100.0" stays
	// "100.0". They are only parsed to reject non-numeric values.
	amountReceived := strings.TrimSpace(rec[colAmtReceived])
	if _, err := decimal.NewFromString(amountReceived); err != nil {
		return model.Transaction{}, &rowProblem{field: "Amount Received", msg: fmt.Sprintf("unparseable amount %q", rec[colAmtReceived])}
	}
	amountPaid := strings.TrimSpace(rec[colAmtPaid])
	if _, err := decimal.NewFromString(amountPaid); err != nil {
		return model.Transaction{}, &rowProblem{field: "Amount Paid", msg: fmt.Sprintf("unparseable amount %q", rec[colAmtPaid])}
	}

	var laundering bool
	switch strings.TrimSpace(rec[colLaundering]) {
	case "1":
		laundering = true
	case "0", "":
		laundering = false
	default:
		return model.Transaction{}, &rowProblem{field: "Is Laundering", msg: fmt.Sprintf("expected 0 or 1, got %q", rec[colLaundering])}
	}

	return model.Transaction{
		ID:                id,
		Timestamp:         rawTimestamp,
		Time:              ts,
		FromBank:          fromBank,
		FromAccount:       fromAccount,
		ToBank:            toBank,
		ToAccount:         toAccount,
		AmountReceived:    amountReceived,
		ReceivingCurrency: strings.TrimSpace(rec[colRcvCurrency]),
		AmountPaid:        amountPaid,
		PaymentCurrency:   strings.TrimSpace(rec[colPayCurrency]),
		PaymentFormat:     strings.TrimSpace(rec[colPayFormat]),
		IsLaundering:      laundering,
	}, nil
}

// MarshalTransaction converts a Transaction to its node table row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, outNumFields)
	row[colOutID] = strconv.FormatInt(t.ID, 10)
	row[colOutTimestamp] = t.Timestamp
	row[colOutDate] = t.Time.Format(isoLayout)
	row[colOutFromBank] = strconv.Itoa(t.FromBank)
	row[colOutFromAccount] = t.FromAccount
	row[colOutToBank] = strconv.Itoa(t.ToBank)
	row[colOutToAccount] = t.ToAccount
	row[colOutAmtReceived] = t.AmountReceived
	row[colOutRcvCurrency] = t.ReceivingCurrency
	row[colOutAmtPaid] = t.AmountPaid
	row[colOutPayCurrency] = t.PaymentCurrency
	row[colOutPayFormat] = t.PaymentFormat
	row[colOutLaundering] = strconv.FormatBool(t.IsLaundering)
	return row
}
