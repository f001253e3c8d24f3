package ledger

import (
	"fmt"
	"math/rand"
	"time"

	"pos-service/internal/models"
)

// SeedDemo fills the ledger with demo sales history spread over the last
// seven days, oldest recorded first so the log reads newest-first.
func SeedDemo(l *Ledger, count int) {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	for i := count - 1; i >= 0; i-- {
		created := now.AddDate(0, 0, -(i*7/count))
		subtotal := int64(50000 + rng.Intn(100000))

		l.Record(models.Transaction{
			ID:         fmt.Sprintf("INV-DEMO%03d", count-i),
			CreatedAt:  created,
			Subtotal:   subtotal,
			GrandTotal: subtotal,
			AINote:     "Transaksi berhasil.",
		})
	}
}
