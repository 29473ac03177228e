package mem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatchedWriteFirst(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name      string
		Seed      uint8 // Prior contents of every cell.
		ReadAddr  uint
		WriteAddr uint
		Value     uint8
		Observe   uint8
	}){
		{Name: "same-addr", Seed: 0x11, ReadAddr: 3, WriteAddr: 3, Value: 0xa5, Observe: 0xa5},
		{Name: "other-addr", Seed: 0x11, ReadAddr: 4, WriteAddr: 3, Value: 0xa5, Observe: 0x11},
		{Name: "wrap-same", Seed: 0x22, ReadAddr: 19, WriteAddr: 3, Value: 0x7e, Observe: 0x7e},
	}

	for _, testcase := range table {
		lm := NewLatched(16, nil)
		for n := range lm.Cell {
			lm.Cell[n] = testcase.Seed
		}

		lm.RequestRead(testcase.ReadAddr)
		lm.CommitWrite(testcase.WriteAddr, testcase.Value)
		lm.Step()

		assert.Equal(testcase.Observe, lm.Observe(), fmt.Sprintf("%+v", testcase))
	}
}

func TestLatchedLatency(t *testing.T) {
	assert := assert.New(t)

	lm := NewLatched(8, nil)
	lm.Cell[5] = 0x5a

	// Not observable until the step completes.
	lm.RequestRead(5)
	assert.Equal(uint8(0), lm.Observe())
	lm.Step()
	assert.Equal(uint8(0x5a), lm.Observe())

	// Held stable with no further request.
	lm.CommitWrite(5, 0xff)
	lm.Step()
	lm.Step()
	assert.Equal(uint8(0x5a), lm.Observe())
	assert.Equal(uint8(0xff), lm.Cell[5])
}

func TestLatchedReset(t *testing.T) {
	assert := assert.New(t)

	fill := func(cell []uint8) {
		for n := range cell {
			cell[n] = uint8(n) + 1
		}
	}

	lm := NewLatched(4, fill)
	assert.Equal([]uint8{1, 2, 3, 4}, lm.Cell)

	lm.CommitWrite(2, 0xee)
	lm.Step()
	assert.Equal(uint8(0xee), lm.Cell[2])

	lm.Reset()
	assert.Equal([]uint8{1, 2, 3, 4}, lm.Cell)

	// Zero-fill variant.
	zm := NewLatched(4, nil)
	zm.CommitWrite(0, 1)
	zm.Step()
	zm.Reset()
	assert.Equal([]uint8{0, 0, 0, 0}, zm.Cell)
}
