package teb

import "errors"

var errNoRoom = errors.New("teb: not enough free bits")

// bitStore is the explicit part of a span. Indexes are explicit offsets.
type bitStore interface {
	test(i uint64) bool
	assign(i uint64, v bool)
	insert(at, count uint64, v bool)
	remove(at, count uint64)
}

// span is a bit sequence whose edge runs are held as counts. Logical
// positions [0, lead) read as leadVal, [lead, lead+bits) are stored and
// [lead+bits, lead+bits+trail) read as false.
//
// Every edit checks its cost against the free bits before touching
// anything, so a failed edit leaves the span unchanged. A span with a nil
// store only tracks the counts; running a sequence of edits on one of those
// prices the sequence without mutating the buffer.
type span struct {
	lead, bits, trail uint64
	cap               uint64
	leadVal           bool
	store             bitStore
}

// dry returns a copy of s that only tracks counts.
func (s span) dry() span {
	s.store = nil
	return s
}

func (s *span) free() uint64  { return s.cap - s.bits }
func (s *span) end() uint64   { return s.lead + s.bits }
func (s *span) total() uint64 { return s.lead + s.bits + s.trail }

func (s *span) get(i uint64) bool {
	switch {
	case i < s.lead:
		return s.leadVal
	case i >= s.end():
		return false
	}
	return s.store.test(i - s.lead)
}

func (s *span) charge(cost uint64) error {
	if cost > s.free() {
		return errNoRoom
	}
	return nil
}

// write sets position i to v. A position inside an edge run is made
// explicit together with everything between it and the stored region.
func (s *span) write(i uint64, v bool) error {
	switch {
	case i < s.lead:
		if v == s.leadVal {
			return nil
		}
		k := s.lead - i
		if err := s.charge(k); err != nil {
			return err
		}
		if s.store != nil {
			s.store.insert(0, k, s.leadVal)
			s.store.assign(0, v)
		}
		s.lead -= k
		s.bits += k

	case i >= s.end():
		if !v {
			return nil
		}
		if s.bits == 0 && i == s.lead && s.leadVal {
			s.lead++
			s.trail--
			return nil
		}
		k := i - s.end() + 1
		if err := s.charge(k); err != nil {
			return err
		}
		// the gap below i is already clear in the buffer
		if s.store != nil {
			s.store.assign(i-s.lead, true)
		}
		s.trail -= k
		s.bits += k

	default:
		if s.store != nil {
			s.store.assign(i-s.lead, v)
		}
	}
	return nil
}

// insert adds count positions valued v before position i.
func (s *span) insert(i, count uint64, v bool) error {
	if count == 0 {
		return nil
	}
	switch {
	case i <= s.lead && v == s.leadVal:
		s.lead += count

	case i >= s.end() && !v:
		s.trail += count

	case i < s.lead:
		k := s.lead - i
		if err := s.charge(k + count); err != nil {
			return err
		}
		if s.store != nil {
			s.store.insert(0, k, s.leadVal)
			s.store.insert(0, count, v)
		}
		s.lead = i
		s.bits += k + count

	case i > s.end():
		k := i - s.end()
		if err := s.charge(k + count); err != nil {
			return err
		}
		if s.store != nil {
			s.store.insert(i-s.lead, count, v)
		}
		s.trail -= k
		s.bits += k + count

	default:
		if err := s.charge(count); err != nil {
			return err
		}
		if s.store != nil {
			s.store.insert(i-s.lead, count, v)
		}
		s.bits += count
	}
	return nil
}

// remove deletes positions [i, i+count). Removal never costs bits.
func (s *span) remove(i, count uint64) {
	lo, hi := i, i+count
	end := s.end()

	fromLead := min(hi, s.lead) - min(lo, s.lead)

	var fromBits uint64
	el, eh := max(lo, s.lead), min(hi, end)
	if eh > el {
		fromBits = eh - el
		if s.store != nil {
			s.store.remove(el-s.lead, fromBits)
		}
	}

	var fromTrail uint64
	if tl := max(lo, end); hi > tl {
		fromTrail = hi - tl
	}

	s.lead -= fromLead
	s.bits -= fromBits
	s.trail -= fromTrail
}
