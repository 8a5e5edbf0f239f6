package clients

import (
	"fmt"
	"sort"
	"time"

	"clientes/internal/core"
)

// Month abbreviations the way date-fns renders them for es.
var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// ClientRow is a display-ready view of one record: the record itself plus
// the due-today flag and pre-formatted dates.
type ClientRow struct {
	core.ClientRecord
	DueToday   bool
	SaleDay    string // "02 mar 2024"
	PaymentDay string
}

// SortByPaymentDate returns a new slice ordered by payment date ascending,
// earliest due first. The sort is stable: ties keep their original relative
// order. The input is never mutated.
func SortByPaymentDate(recs []core.ClientRecord) []core.ClientRecord {
	out := append([]core.ClientRecord(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out
}

// Present sorts the records for display and computes per-row flags. The
// due-today flag drives row highlighting and is independent of sort position.
func Present(recs []core.ClientRecord, now time.Time, loc *time.Location) []ClientRow {
	sorted := SortByPaymentDate(recs)
	rows := make([]ClientRow, len(sorted))
	for i, rec := range sorted {
		rows[i] = ClientRow{
			ClientRecord: rec,
			DueToday:     core.DueToday(rec.PaymentDate, now, loc),
			SaleDay:      displayDay(rec.SaleDate, loc),
			PaymentDay:   displayDay(rec.PaymentDate, loc),
		}
	}
	return rows
}

func displayDay(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%02d %s %d", local.Day(), spanishMonths[local.Month()-1], local.Year())
}
