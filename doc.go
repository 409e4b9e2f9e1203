// Package arbor grows an animated tree from an L-system word.
//
// A word such as
//
//	T(30)[+M(8)[+W(14)F(0.82,9)]]T(20)
//
// is parsed once into a [Program] of [Instruction] values and replayed
// every frame by a turtle machine. Growth is driven by a [GrowthClock]: over
// [GrowthDuration] the tree reveals its instructions one after another,
// each easing in from nothing, while everything already passed stays fully
// drawn. Pseudo-random variation (bare branch length, branch angle, fruit
// stem length) comes from a seeded [Noise], so the same word always grows
// into the same tree.
//
// # Quick start
//
//	tree := arbor.NewTree(word)
//	ground := arbor.NewGround()
//
//	// every frame:
//	ground.Draw(surface, frame)
//	tree.Tick(surface, sinceStart)
//
// The screen package provides an Ebitengine window that does exactly this;
// the raster package renders single frames headlessly.
//
// # Words
//
// Tokens are T(height) trunk, M(distance) move, W(width) stroke width,
// F(sentiment,count) fruit, [ and ] branch open and close, + and - turn.
// Unknown input is skipped and bad numbers fall back to defaults; parsing
// never fails.
//
// # Surfaces
//
// Drawing goes through the small immediate-mode [Surface] interface.
// [Canvas] implements it on top of any [TriangleSink] and [Recorder]
// records calls for tests and tooling.
package arbor
