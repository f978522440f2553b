package domain

import "fmt"

// ValidateSeat checks that row and seat lie inside the airplane's seating
// grid. Row is checked first; a bad row is reported even if seat is also bad.
func ValidateSeat(row, seat int, airplane Airplane) error {
	if row < 1 || row > airplane.Rows {
		return &BoundsError{
			Index:   -1,
			Field:   "row",
			Value:   row,
			Max:     airplane.Rows,
			Message: fmt.Sprintf("Row #%d must be in range (1, %d)", row, airplane.Rows),
		}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &BoundsError{
			Index:   -1,
			Field:   "seat",
			Value:   seat,
			Max:     airplane.SeatsInRow,
			Message: fmt.Sprintf("Seat #%d must be in range (1, %d)", seat, airplane.SeatsInRow),
		}
	}
	return nil
}

// CheckRegrid rejects a grid that would leave an issued ticket outside it.
// outermost holds the highest row and the highest seat number among the
// tickets already issued on the airplane's flights; zero means none.
func (a Airplane) CheckRegrid(outermost Seat) error {
	if outermost.Row > a.Rows {
		return &FieldError{Field: "rows", Message: fmt.Sprintf("must be at least %d to keep issued tickets", outermost.Row)}
	}
	if outermost.Seat > a.SeatsInRow {
		return &FieldError{Field: "seats_in_row", Message: fmt.Sprintf("must be at least %d to keep issued tickets", outermost.Seat)}
	}
	return nil
}

// AvailableSeats is the airplane capacity minus the tickets already issued
// for a flight on it.
func AvailableSeats(airplane Airplane, taken int) int {
	return airplane.Capacity() - taken
}
