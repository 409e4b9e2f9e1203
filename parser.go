package arbor

import (
	"math"
	"strconv"
	"strings"
)

// Fallbacks for missing or malformed numeric arguments.
const (
	DefaultTrunkHeight    = 20.0
	DefaultMoveDistance   = 50.0
	DefaultStrokeWidth    = 1.0
	DefaultFruitSentiment = 0.5
	DefaultFruitCount     = 1.0
)

// Parse lexes and parses word into a Program. Unrecognized input is dropped
// and bad arguments fall back to the defaults above, so Parse never fails.
func Parse(word string) *Program {
	p := &Program{}
	for _, tok := range NewLexer(word).Scan() {
		in, ok := instructionFor(tok)
		if !ok {
			continue
		}
		switch in.Op {
		case OpTrunk:
			p.Trunks++
		case OpFruit:
			p.Fruits++
		}
		p.Instructions = append(p.Instructions, in)
	}
	return p
}

func instructionFor(tok Token) (Instruction, bool) {
	switch tok.Kind {
	case TokenOpen:
		return Push(), true
	case TokenClose:
		return Pop(), true
	case TokenPlus:
		return Rotate(1), true
	case TokenMinus:
		return Rotate(-1), true
	case TokenCall:
		switch tok.Letter {
		case 'T':
			return Trunk(arg(tok.Args, 0, DefaultTrunkHeight)), true
		case 'M':
			return Move(arg(tok.Args, 0, DefaultMoveDistance)), true
		case 'W':
			return SetWidth(arg(tok.Args, 0, DefaultStrokeWidth)), true
		case 'F':
			return Fruit(
				arg(tok.Args, 0, DefaultFruitSentiment),
				arg(tok.Args, 1, DefaultFruitCount),
			), true
		}
	}
	return Instruction{}, false
}

// arg parses args[i] as a finite float, or returns def.
func arg(args []string, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
