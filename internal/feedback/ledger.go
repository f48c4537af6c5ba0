package feedback

import "encoding/json"

// Capacity is the number of most recent records the ledger keeps.
const Capacity = 10

// Ledger is a fixed-capacity ring buffer of feedback records in arrival order.
// It is a value type: copying a Ledger copies its contents.
type Ledger struct {
	buf   [Capacity]Record
	start int
	n     int
}

// NewLedger builds a ledger from records in arrival order, keeping the most
// recent Capacity of them.
func NewLedger(records ...Record) Ledger {
	var l Ledger
	for _, r := range records {
		l.Append(r)
	}
	return l
}

// Append adds r as the newest record. When the ledger is full the oldest
// record is evicted and Append returns true.
func (l *Ledger) Append(r Record) (evicted bool) {
	if l.n < Capacity {
		l.buf[(l.start+l.n)%Capacity] = r
		l.n++
		return false
	}
	l.buf[l.start] = r
	l.start = (l.start + 1) % Capacity
	return true
}

// Len returns the number of records held.
func (l Ledger) Len() int {
	return l.n
}

// Records returns all records, oldest first.
func (l Ledger) Records() []Record {
	return l.Recent(l.n)
}

// Recent returns the last n records, oldest first.
func (l Ledger) Recent(n int) []Record {
	if n > l.n {
		n = l.n
	}
	if n <= 0 {
		return nil
	}
	out := make([]Record, 0, n)
	for i := l.n - n; i < l.n; i++ {
		out = append(out, l.buf[(l.start+i)%Capacity])
	}
	return out
}

// Latest returns the newest record, if any.
func (l Ledger) Latest() (Record, bool) {
	if l.n == 0 {
		return Record{}, false
	}
	return l.buf[(l.start+l.n-1)%Capacity], true
}

// MarshalJSON encodes the ledger as an array, oldest first.
func (l Ledger) MarshalJSON() ([]byte, error) {
	records := l.Records()
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

// UnmarshalJSON decodes an array of records, keeping the most recent Capacity.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	*l = NewLedger(records...)
	return nil
}
