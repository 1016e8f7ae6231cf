// Package accounts turns a raw accounts export into deduplicated Bank,
// Entity and Account node tables plus the ownership and membership
// relationship tables, ready for bulk graph import.
package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/graphprep-dev/graphprep/internal/model"
	"github.com/graphprep-dev/graphprep/internal/report"
)

// Normalizer accumulates deduplicated nodes and relationship pairs over a
// single pass of the raw accounts table. Maps are bounded by distinct
// bank/entity/account cardinality, not row count. Node attributes are
// last-write-wins; output order is first-seen, so re-runs over identical
// input produce byte-identical tables.
type Normalizer struct {
	banks     map[int]model.Bank
	bankOrder []int

	entities    map[string]model.Entity
	entityOrder []string

	accounts     map[string]bool
	accountOrder []string

	ownerships map[model.Ownership]bool
	ownOrder   []model.Ownership

	memberships map[model.Membership]bool
	memberOrder []model.Membership

	summary report.Summary
}

// NewNormalizer creates an empty Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		banks:       make(map[int]model.Bank),
		entities:    make(map[string]model.Entity),
		accounts:    make(map[string]bool),
		ownerships:  make(map[model.Ownership]bool),
		memberships: make(map[model.Membership]bool),
	}
}

// TransformFile runs the full accounts transform: read inputPath, write the
// five output tables under outDir. The summary is valid even when err is
// non-nil.
func TransformFile(inputPath, outDir string) (report.Summary, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return report.Summary{}, fmt.Errorf("opening accounts input: %w", err)
	}
	defer f.Close()

	n := NewNormalizer()
	if err := n.ReadFrom(f); err != nil {
		return n.Summary(), err
	}
	if err := n.WriteTo(outDir); err != nil {
		return n.Summary(), err
	}
	return n.Summary(), nil
}

// ReadFrom streams the raw accounts CSV into the accumulator. Header and
// column-arity problems are fatal; content problems on individual rows are
// counted and the row is dropped.
func (n *Normalizer) ReadFrom(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = rawNumFields

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: input has no header row", ErrHeaderMismatch)
	}
	// A wrong-arity header still comes back as a record; let the header
	// validation report it.
	if err != nil && !errors.Is(err, csv.ErrFieldCount) {
		return fmt.Errorf("reading accounts header: %w", err)
	}
	if err := validateRawHeader(header); err != nil {
		return err
	}

	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading accounts CSV: %w", err)
		}
		row++
		n.add(rec, row)
	}
	return nil
}

func (n *Normalizer) add(rec []string, row int) {
	bankName := strings.TrimSpace(rec[colBankName])
	rawBankID := strings.TrimSpace(rec[colBankID])
	accountNumber := strings.TrimSpace(rec[colAccountNum])
	entityID := strings.TrimSpace(rec[colEntityID])
	entityName := strings.TrimSpace(rec[colEntityName])

	switch {
	case rawBankID == "":
		n.summary.RecordSkip(row, "Bank ID", "missing required key")
		return
	case accountNumber == "":
		n.summary.RecordSkip(row, "Account Number", "missing required key")
		return
	case entityID == "":
		n.summary.RecordSkip(row, "Entity ID", "missing required key")
		return
	}

	bankID, err := strconv.Atoi(rawBankID)
	if err != nil {
		n.summary.RecordFailure(row, "Bank ID", fmt.Sprintf("non-numeric bank id %q", rawBankID))
		return
	}

	if _, seen := n.banks[bankID]; !seen {
		n.bankOrder = append(n.bankOrder, bankID)
	}
	n.banks[bankID] = model.Bank{ID: bankID, Name: bankName}

	if _, seen := n.entities[entityID]; !seen {
		n.entityOrder = append(n.entityOrder, entityID)
	}
	n.entities[entityID] = model.Entity{ID: entityID, Name: entityName}

	if !n.accounts[accountNumber] {
		n.accounts[accountNumber] = true
		n.accountOrder = append(n.accountOrder, accountNumber)
	}

	own := model.Ownership{EntityID: entityID, AccountNumber: accountNumber}
	if !n.ownerships[own] {
		n.ownerships[own] = true
		n.ownOrder = append(n.ownOrder, own)
	}

	member := model.Membership{AccountNumber: accountNumber, BankID: bankID}
	if !n.memberships[member] {
		n.memberships[member] = true
		n.memberOrder = append(n.memberOrder, member)
	}

	n.summary.Processed++
}

// WriteTo flushes the accumulated tables under outDir.
func (n *Normalizer) WriteTo(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	bankRows := make([][]string, 0, len(n.bankOrder))
	for _, b := range n.Banks() {
		bankRows = append(bankRows, []string{strconv.Itoa(b.ID), b.Name})
	}
	if err := writeTable(filepath.Join(outDir, BanksFile), BanksHeader, bankRows); err != nil {
		return err
	}

	entityRows := make([][]string, 0, len(n.entityOrder))
	for _, e := range n.Entities() {
		entityRows = append(entityRows, []string{e.ID, e.Name})
	}
	if err := writeTable(filepath.Join(outDir, EntitiesFile), EntitiesHeader, entityRows); err != nil {
		return err
	}

	accountRows := make([][]string, 0, len(n.accountOrder))
	for _, a := range n.Accounts() {
		accountRows = append(accountRows, []string{a.Number})
	}
	if err := writeTable(filepath.Join(outDir, AccountsFile), AccountsHeader, accountRows); err != nil {
		return err
	}

	ownRows := make([][]string, 0, len(n.ownOrder))
	for _, o := range n.Ownerships() {
		ownRows = append(ownRows, []string{o.EntityID, o.AccountNumber})
	}
	if err := writeTable(filepath.Join(outDir, OwnershipFile), OwnershipHeader, ownRows); err != nil {
		return err
	}

	memberRows := make([][]string, 0, len(n.memberOrder))
	for _, m := range n.Memberships() {
		memberRows = append(memberRows, []string{m.AccountNumber, strconv.Itoa(m.BankID)})
	}
	return writeTable(filepath.Join(outDir, MembershipFile), MembershipHeader, memberRows)
}

// Banks returns deduplicated banks in first-seen order.
func (n *Normalizer) Banks() []model.Bank {
	out := make([]model.Bank, 0, len(n.bankOrder))
	for _, id := range n.bankOrder {
		out = append(out, n.banks[id])
	}
	return out
}

// Entities returns deduplicated entities in first-seen order.
func (n *Normalizer) Entities() []model.Entity {
	out := make([]model.Entity, 0, len(n.entityOrder))
	for _, id := range n.entityOrder {
		out = append(out, n.entities[id])
	}
	return out
}

// Accounts returns deduplicated accounts in first-seen order.
func (n *Normalizer) Accounts() []model.Account {
	out := make([]model.Account, 0, len(n.accountOrder))
	for _, number := range n.accountOrder {
		out = append(out, model.Account{Number: number})
	}
	return out
}

// Ownerships returns unique entity-owns-account pairs in first-seen order.
func (n *Normalizer) Ownerships() []model.Ownership {
	return append([]model.Ownership(nil), n.ownOrder...)
}

// Memberships returns unique account-part-of-bank pairs in first-seen order.
func (n *Normalizer) Memberships() []model.Membership {
	return append([]model.Membership(nil), n.memberOrder...)
}

// Summary reports row counts for the pass so far.
func (n *Normalizer) Summary() report.Summary {
	return n.summary
}
