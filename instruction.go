package arbor

import (
	"strconv"
	"strings"
)

// Op identifies the kind of an Instruction.
type Op uint8

const (
	OpTrunk    Op = iota // advance, drawing a tapered trunk segment
	OpMove               // advance, drawing a plain segment
	OpSetWidth           // change the structural stroke width
	OpFruit              // hang a fruit at the current position
	OpPush               // open a branch
	OpPop                // close a branch
	OpRotate             // turn by the base angle plus variance
)

var opNames = [...]string{
	OpTrunk:    "Trunk",
	OpMove:     "Move",
	OpSetWidth: "SetWidth",
	OpFruit:    "Fruit",
	OpPush:     "Push",
	OpPop:      "Pop",
	OpRotate:   "Rotate",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Instruction is one parsed step of an L-system word. Only the fields that
// belong to Op are meaningful.
type Instruction struct {
	Op Op

	Length    float64 // Trunk height or Move distance
	Width     float64 // SetWidth
	Sentiment float64 // Fruit, nominally in [0, 1]
	Count     float64 // Fruit
	Sign      float64 // Rotate: +1 or -1
}

// Trunk returns a Trunk instruction of height h.
func Trunk(h float64) Instruction { return Instruction{Op: OpTrunk, Length: h} }

// Move returns a Move instruction of distance d.
func Move(d float64) Instruction { return Instruction{Op: OpMove, Length: d} }

// SetWidth returns a SetWidth instruction.
func SetWidth(w float64) Instruction { return Instruction{Op: OpSetWidth, Width: w} }

// Fruit returns a Fruit instruction.
func Fruit(sentiment, count float64) Instruction {
	return Instruction{Op: OpFruit, Sentiment: sentiment, Count: count}
}

// Push returns a branch-open instruction.
func Push() Instruction { return Instruction{Op: OpPush} }

// Pop returns a branch-close instruction.
func Pop() Instruction { return Instruction{Op: OpPop} }

// Rotate returns a rotation in the direction of sign (positive turns
// clockwise on screen).
func Rotate(sign float64) Instruction {
	if sign < 0 {
		return Instruction{Op: OpRotate, Sign: -1}
	}
	return Instruction{Op: OpRotate, Sign: 1}
}

// String renders the instruction as its canonical word token.
func (in Instruction) String() string {
	switch in.Op {
	case OpTrunk:
		return "T(" + formatArg(in.Length) + ")"
	case OpMove:
		return "M(" + formatArg(in.Length) + ")"
	case OpSetWidth:
		return "W(" + formatArg(in.Width) + ")"
	case OpFruit:
		return "F(" + formatArg(in.Sentiment) + "," + formatArg(in.Count) + ")"
	case OpPush:
		return "["
	case OpPop:
		return "]"
	case OpRotate:
		if in.Sign < 0 {
			return "-"
		}
		return "+"
	}
	return in.Op.String()
}

func formatArg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Program is an immutable parsed word plus the counts derived from it.
type Program struct {
	Instructions []Instruction
	Trunks       int
	Fruits       int
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Instructions)
}

// String re-emits the program as a canonical word.
func (p *Program) String() string {
	var b strings.Builder
	for _, in := range p.Instructions {
		b.WriteString(in.String())
	}
	return b.String()
}
