package rfcparser

// Txn is a scoped record of a cursor offset used to backtrack failed grammar
// alternatives. Commit re-records the offset at the commit point; Done jumps
// the cursor back to the recorded offset. A Txn that was never committed
// therefore rolls the cursor all the way back to its creation point, while a
// committed one restores the position of the last commit — list productions
// rely on this to leave the cursor just after the last good element when a
// trailing element fails.
//
// The usual shape is:
//
//	txn := p.cursor.Txn()
//	defer txn.Done()
//	...
//	return Accept(txn, node)
//
// Done must run on every exit path, so it is always deferred.
type Txn struct {
	cursor    *Cursor
	saved     int
	committed bool
}

// Txn opens a transaction at the current offset.
func (c *Cursor) Txn() *Txn {
	return &Txn{cursor: c, saved: c.ofs}
}

// Commit records the current offset as the position to keep. Idempotent;
// later consumption is discarded by Done unless committed again.
func (t *Txn) Commit() {
	t.saved = t.cursor.ofs
	t.committed = true
}

// Committed reports whether Commit ran at least once.
func (t *Txn) Committed() bool {
	return t.committed
}

// Done restores the cursor to the last committed offset, or to the opening
// offset if the transaction is still open.
func (t *Txn) Done() {
	t.cursor.Jmp(t.saved)
}

// Accept commits t and returns v unchanged, for use as the final expression
// of a successful production.
func Accept[T any](t *Txn, v T) T {
	t.Commit()

	return v
}
