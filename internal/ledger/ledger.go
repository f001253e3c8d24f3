package ledger

import (
	"sync"

	"pos-service/internal/models"
)

// Ledger is the append-only transaction log, held newest-first for the
// lifetime of the process. Transactions are recorded once at checkout and
// never updated or deleted.
type Ledger struct {
	mu           sync.RWMutex
	transactions []models.Transaction
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Record prepends a completed transaction to the log.
func (l *Ledger) Record(tx models.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append([]models.Transaction{copyTransaction(tx)}, l.transactions...)
}

// List returns a snapshot of the log, newest first.
func (l *Ledger) List() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		out[i] = copyTransaction(tx)
	}
	return out
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

func copyTransaction(tx models.Transaction) models.Transaction {
	out := tx
	if tx.Lines != nil {
		out.Lines = make([]models.CartLine, len(tx.Lines))
		copy(out.Lines, tx.Lines)
	}
	return out
}
