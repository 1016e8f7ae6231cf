package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// RawHeader is the exact header row of a raw accounts export.
const RawHeader = "Bank Name,Bank ID,Account Number,Entity ID,Entity Name"

const (
	rawNumFields  = 5
	colBankName   = 0
	colBankID     = 1
	colAccountNum = 2
	colEntityID   = 3
	colEntityName = 4
)

// Output file names and their neo4j-admin style headers. Column order is
// fixed; the bulk importer relies on it.
const (
	BanksFile      = "banks.csv"
	EntitiesFile   = "entities.csv"
	AccountsFile   = "accounts.csv"
	OwnershipFile  = "entity_owns_account.csv"
	MembershipFile = "account_part_of_bank.csv"

	BanksHeader      = "bank_id:ID(Bank),bank_name"
	EntitiesHeader   = "entity_id:ID(Entity),entity_name"
	AccountsHeader   = "account_number:ID(Account)"
	OwnershipHeader  = ":START_ID(Entity),:END_ID(Account)"
	MembershipHeader = ":START_ID(Account),:END_ID(Bank)"
)

// ErrHeaderMismatch indicates the input file does not have the expected
// header row. This is structural and aborts the run.
var ErrHeaderMismatch = errors.New("unexpected CSV header")

func validateRawHeader(got []string) error {
	want := strings.Split(RawHeader, ",")
	if slices.Equal(got, want) {
		return nil
	}
	return fmt.Errorf("%w: expected %q, got %q", ErrHeaderMismatch, want, got)
}

// writeTable writes one output table: a header row followed by data rows.
func writeTable(path, header string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
