package screen

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences waits, screenshots and a final quit across frames so a
// growth run can be captured unattended. Attach it with Game.SetScript.
//
//	{"steps": [
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "sapling"},
//	  {"action": "wait_grown"},
//	  {"action": "screenshot", "label": "grown"},
//	  {"action": "quit"}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// ParseScript parses a JSON frame script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "wait", "screenshot", "wait_grown", "quit":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and parses a frame script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame. Called from Game.Update.
func (s *Script) step(g *Game) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	switch st.Action {
	case "wait_grown":
		// Stay on this step until the tree has finished growing.
		if !g.tree.Done(g.Elapsed()) {
			return
		}
	case "screenshot":
		g.Screenshot(st.Label)
	case "quit":
		g.quit = true
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	}
	s.cursor++

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
