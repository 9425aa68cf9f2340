package rfcparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxnRollsBackWhenOpen(t *testing.T) {
	c, err := NewCursor("abc", 16)
	require.NoError(t, err)

	func() {
		txn := c.Txn()
		defer txn.Done()

		c.Accept()
		c.Accept()
		require.Equal(t, 2, c.Pos())
	}()

	assert.Equal(t, 0, c.Pos())
}

func TestTxnCommitKeepsPosition(t *testing.T) {
	c, err := NewCursor("abc", 16)
	require.NoError(t, err)

	func() {
		txn := c.Txn()
		defer txn.Done()

		c.Accept()
		txn.Commit()
	}()

	assert.Equal(t, 1, c.Pos())
}

func TestTxnDoneRestoresLastCommit(t *testing.T) {
	// A list production commits after each good element; consumption
	// after the last commit (a separator before a failed element) is
	// given back.
	c, err := NewCursor("abcd", 16)
	require.NoError(t, err)

	func() {
		txn := c.Txn()
		defer txn.Done()

		c.Accept()
		c.Accept()
		txn.Commit()

		c.Accept()
		require.Equal(t, 3, c.Pos())
	}()

	assert.Equal(t, 2, c.Pos())
}

func TestTxnAccept(t *testing.T) {
	c, err := NewCursor("abc", 16)
	require.NoError(t, err)

	got := func() string {
		txn := c.Txn()
		defer txn.Done()

		c.Accept()

		require.False(t, txn.Committed())

		return Accept(txn, "value")
	}()

	assert.Equal(t, "value", got)
	assert.Equal(t, 1, c.Pos())
}

func TestTxnNesting(t *testing.T) {
	c, err := NewCursor("abcdef", 16)
	require.NoError(t, err)

	func() {
		outer := c.Txn()
		defer outer.Done()

		c.Accept()
		outer.Commit()

		// inner alternative fails and rolls back on its own
		func() {
			inner := c.Txn()
			defer inner.Done()

			c.Accept()
			c.Accept()
		}()

		require.Equal(t, 1, c.Pos())
	}()

	assert.Equal(t, 1, c.Pos())
}

func TestTxnCommitIsIdempotent(t *testing.T) {
	c, err := NewCursor("abc", 16)
	require.NoError(t, err)

	txn := c.Txn()

	c.Accept()
	txn.Commit()
	txn.Commit()
	txn.Done()

	assert.Equal(t, 1, c.Pos())
	assert.True(t, txn.Committed())
}
