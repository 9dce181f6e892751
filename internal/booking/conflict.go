// Package booking holds the pure reservation rules: interval representation
// and overlap detection. It performs no I/O so the predicates can be tested
// and reasoned about in isolation from persistence.
package booking

// Slot is a half-open [Start, End) time window on a calendar date.
//
// Date uses the "2006-01-02" layout and Start/End use "15:04:05". Both are
// fixed-width, so ordinary string comparison orders them chronologically and
// matches the comparisons the storage layer issues in SQL.
type Slot struct {
	Date  string
	Start string
	End   string
}

// Overlaps reports whether two slots intersect. Slots on different dates
// never overlap, and boundary-touching slots (one ending exactly when the
// other starts) do not conflict, so back-to-back bookings are permitted.
func (s Slot) Overlaps(other Slot) bool {
	if s.Date != other.Date {
		return false
	}
	return s.Start < other.End && s.End > other.Start
}

// Reservation is the minimal view of a persisted reservation the conflict
// rules need.
type Reservation struct {
	ID     int64
	RoomID int64
	Slot   Slot
}

// FindConflict returns the first existing reservation for the candidate's
// room whose slot overlaps the candidate. A reservation never conflicts with
// itself, which lets full-record updates keep their own time window.
func FindConflict(existing []Reservation, candidate Reservation) (Reservation, bool) {
	for _, reservation := range existing {
		if candidate.ID != 0 && reservation.ID == candidate.ID {
			continue
		}
		if reservation.RoomID != candidate.RoomID {
			continue
		}
		if reservation.Slot.Overlaps(candidate.Slot) {
			return reservation, true
		}
	}
	return Reservation{}, false
}
