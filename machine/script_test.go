// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptScenario(t *testing.T) {
	assert := assert.New(t)

	src := `
upload("+++[-.]")
run()

want = [2, 1, 0]
for expect in want:
    got = recv()
    if got != expect:
        fail("recv: got %r, want %r" % (got, expect))

step(1000)
if not halted():
    fail("machine did not halt")
if cell() != 0:
    fail("cell: got %r" % cell())
`

	sc := NewScript(NewMachine())
	err := sc.Run("scenario.star", src)
	assert.NoError(err)
}

func TestScriptBinaryUpload(t *testing.T) {
	assert := assert.New(t)

	src := `
upload([0x45, 0x80, 0x00])
run()
if recv() != 5:
    fail("recv")
step(1000)
if dp() != 0:
    fail("dp: got %r" % dp())
if steps() == 0:
    fail("steps")
`

	sc := NewScript(NewMachine())
	err := sc.Run("binary.star", src)
	assert.NoError(err)
}

func TestScriptDefaultProgram(t *testing.T) {
	assert := assert.New(t)

	src := `
reset()
run()
send("a")
if recv() != 0x41:
    fail("case conversion")
send(0)
if recv() != 0x0a:
    fail("newline")
`

	sc := NewScript(NewMachine())
	err := sc.Run("echo.star", src)
	assert.NoError(err)
}

func TestScriptErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name string
		Src  string
		Err  error
	}){
		{Name: "byte-range", Src: `send(256)`, Err: ErrScriptByte},
		{Name: "byte-negative", Src: `send(-1)`, Err: ErrScriptByte},
		{Name: "program-type", Src: `upload(42)`, Err: ErrScriptProgram},
		{Name: "program-item", Src: `upload(["x"])`, Err: ErrScriptProgram},
	}

	for _, testcase := range table {
		sc := NewScript(NewMachine())
		err := sc.Run(testcase.Name+".star", testcase.Src)
		assert.ErrorContains(err, testcase.Err.Error(), testcase.Name)
	}
}
