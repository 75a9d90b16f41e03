package rijn

import "fmt"

// Inputs is the input pin set an engine samples on one clock edge. Key
// and Data are only read on the tick where Enable is set; they may
// change freely on every other tick.
type Inputs struct {
	Reset  bool
	Enable bool
	Key    []byte
	Data   Block
}

// transforms is the per-direction half of the round engine. Encrypt and
// decrypt share one control skeleton and differ only in the transform
// order and the direction the schedule is walked.
type transforms struct {
	// latchRound is the round counter value loaded at the latch tick:
	// encrypt performs round 0 right there and starts busy at 1, while
	// decrypt defers round 0 to the first busy tick.
	latchRound int
	latchState func(data Block, key []byte) Block
	midRound   func(state, rk Block) Block
	finalRound func(state, rk Block) Block
	// keyIndex maps the engine round counter to a schedule window.
	keyIndex func(nr, round int) int
	roundKey func(w []uint32, nr, index int) Block
}

var encryptTransforms = transforms{
	latchRound: 1,
	latchState: func(data Block, key []byte) Block {
		// Round 0 is a direct XOR with the leading 128 bits of the raw
		// key, not a schedule lookup.
		var rk Block
		copy(rk[:], key[:BlockSize])
		return addRoundKey(data, rk)
	},
	midRound: func(state, rk Block) Block {
		return addRoundKey(mixColumns(shiftRows(subBytes(state))), rk)
	},
	finalRound: func(state, rk Block) Block {
		return addRoundKey(shiftRows(subBytes(state)), rk)
	},
	keyIndex: func(nr, round int) int { return round },
	roundKey: func(w []uint32, nr, index int) Block { return encryptRoundKey(w, index) },
}

var decryptTransforms = transforms{
	latchRound: 0,
	latchState: func(data Block, key []byte) Block { return data },
	midRound: func(state, rk Block) Block {
		return addRoundKey(invMixColumns(invSubBytes(invShiftRows(state))), rk)
	},
	finalRound: func(state, rk Block) Block {
		return addRoundKey(invSubBytes(invShiftRows(state)), rk)
	},
	// The schedule is walked in reverse as the round counter increases,
	// so decryption reuses the forward-expanded schedule as is.
	keyIndex: func(nr, round int) int { return nr - round },
	roundKey: decryptRoundKey,
}

// Engine is one direction of the cipher as a synchronous state machine.
// A tick computes every register's next value from the previous tick's
// values alone; there is no implicit "leave unchanged" other than the
// explicit idle branch. Instances share nothing and may be used from
// different goroutines independently, but a single Engine is not safe
// for concurrent ticking.
type Engine struct {
	p     Params
	t     *transforms
	sched []uint32
	data  Block
	state Block
	round int
	busy  bool
	out   Block
}

// NewEncrypter returns an idle encryption engine for the given geometry.
func NewEncrypter(p Params) *Engine {
	return &Engine{p: p, t: &encryptTransforms}
}

// NewDecrypter returns an idle decryption engine for the given geometry.
func NewDecrypter(p Params) *Engine {
	return &Engine{p: p, t: &decryptTransforms}
}

// Params returns the engine's key geometry.
func (e *Engine) Params() Params { return e.p }

// Busy reports whether an operation is in flight. It drops to false on
// the same tick that Output becomes valid.
func (e *Engine) Busy() bool { return e.busy }

// Output returns the last completed result. It is cleared by Reset and
// by the latch tick of a new operation, and is stale by contract while
// the engine is busy.
func (e *Engine) Output() Block { return e.out }

// Reset clears every register, output included. It models an
// asynchronous reset line: callable at any point, mid-operation
// included, and it overrides everything else.
func (e *Engine) Reset() {
	e.sched = nil
	e.data = Block{}
	e.state = Block{}
	e.round = 0
	e.busy = false
	e.out = Block{}
}

// Tick advances the machine by one clock edge. Reset wins over Enable,
// Enable wins over the in-flight operation (aborting it and re-latching,
// even while busy), and with nothing asserted an idle engine holds every
// register. The only error is the latch-time contract violation of a key
// that does not match the engine geometry; the registers are left
// untouched in that case.
func (e *Engine) Tick(in Inputs) error {
	if in.Reset {
		e.Reset()
		return nil
	}
	switch {
	case in.Enable:
		if len(in.Key) != 4*e.p.Nk {
			return fmt.Errorf("rijn: key is %d bytes, engine expects %d", len(in.Key), 4*e.p.Nk)
		}
		e.sched = expandKey(in.Key, e.p)
		e.data = in.Data
		e.state = e.t.latchState(in.Data, in.Key)
		e.round = e.t.latchRound
		e.busy = true
		e.out = Block{}
	case e.busy && e.round == 0:
		// Decrypt's deferred round 0: a bare key addition with the top
		// of the schedule.
		e.state = addRoundKey(e.data, e.roundKey(0))
		e.round = 1
	case e.busy && e.round != e.p.Nr:
		e.state = e.t.midRound(e.state, e.roundKey(e.round))
		e.round++
	case e.busy:
		e.out = e.t.finalRound(e.state, e.roundKey(e.round))
		e.round = 0
		e.busy = false
		e.state = Block{}
	default:
		// Idle with nothing asserted: hold.
	}
	return nil
}

func (e *Engine) roundKey(round int) Block {
	return e.t.roundKey(e.sched, e.p.Nr, e.t.keyIndex(e.p.Nr, round))
}

// Run latches one operation and ticks the engine to completion,
// returning the output block. Any operation already in flight is
// aborted, exactly as a fresh enable pulse would.
func (e *Engine) Run(key []byte, data Block) (Block, error) {
	if err := e.Tick(Inputs{Enable: true, Key: key, Data: data}); err != nil {
		return Block{}, err
	}
	for e.busy {
		e.Tick(Inputs{})
	}
	return e.out, nil
}
