package date

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range between from and to, boundaries included.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains returns true if date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns all the dates of the range in chronological order.
func (r Range) Days() []Date {
	if r.To.Before(r.From) {
		return nil
	}
	days := make([]Date, 0, 7)
	for d := r.From; !d.After(r.To); d = d.Add(1) {
		days = append(days, d)
	}
	return days
}
