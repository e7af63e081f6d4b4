package teb

// Update sets the bit at pos to val in place.
func (f *Flat) Update(pos uint64, val bool) (UpdateResult, error) {
	return f.update(pos, val, ModeApply, false)
}

// UpdateRelative makes the bit at pos read as val, where the visible value
// is the stored value XOR flipped. A leaf covering more than one position is
// not split; the update is Deferred so the caller can flip its overlay
// instead. The exception is a leaf one level above the bottom when the
// two-run shortcut is enabled.
func (f *Flat) UpdateRelative(pos uint64, val, flipped bool) (UpdateResult, error) {
	return f.update(pos, val, ModeRelative, flipped)
}

func (f *Flat) update(pos uint64, val bool, mode Mode, flipped bool) (UpdateResult, error) {
	if err := f.checkPos(pos); err != nil {
		return NoOp, err
	}
	node, level := f.locate(pos)
	cur := f.label(node)

	target := val
	if mode == ModeRelative {
		if visible := cur != flipped; visible == val {
			return NoOp, nil
		}
		target = !cur
		if level < f.height && !(f.twoRun && level+1 == f.height) {
			return Deferred, nil
		}
	} else if cur == val {
		return NoOp, nil
	}

	var res UpdateResult
	if level < f.height {
		res = f.split(node, level, pos, target)
	} else {
		res = f.setLabel(node, target)
	}
	if res == Applied {
		f.flush()
	}
	return res, nil
}

// setLabel flips the label of a single position leaf. A label inside an
// implicit zero run costs the distance from the stored region.
func (f *Flat) setLabel(node uint64, val bool) UpdateResult {
	if err := f.labels.write(f.labelIndex(node), val); err != nil {
		return Deferred
	}
	return Applied
}
