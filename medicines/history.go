package medicines

import "github.com/giygas/myoncologist-api/entities"

// HistoryLimit is the number of scans kept per session.
const HistoryLimit = 5

// Record returns a new history with entry first followed by at most
// HistoryLimit-1 of the previous entries. history is never modified.
func Record(history []entities.MedicineRecord, entry entities.MedicineRecord) []entities.MedicineRecord {
	keep := min(len(history), HistoryLimit-1)

	out := make([]entities.MedicineRecord, 0, keep+1)
	out = append(out, entry)
	return append(out, history[:keep]...)
}
