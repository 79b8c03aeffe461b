/*
Package goban is a rules engine and record format for the board game Go (Baduk).

It tracks board state, enforces the legality of moves (occupancy, suicide, ko),
keeps a branching history of play, and reads and writes that history as SGF.

# Concept

A Game pairs a game tree with a cursor. Every accepted move appends a child to
the node under the cursor (or follows an existing child reached by the same
move) and advances the cursor. Navigating back and playing a different move
creates a variation; nothing is ever overwritten. Boards are immutable, so any
node's position can be handed to a renderer without copying.

# Key Features

  - Rules: captures, suicide (optionally allowed), simple ko or positional superko.
  - Scoring: area or territory counting with komi and dead-stone marking.
  - Game tree: ID-addressed nodes, variations, main line, truncation.
  - SGF: FF[4] import/export with variations, multi-game collections, charsets.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/goban"
		"github.com/aretw0/goban/pkg/domain"
	)

	func main() {
		game, err := goban.New(9, goban.WithRuleset(domain.Japanese()))
		if err != nil {
			log.Fatal(err)
		}

		if _, err := game.Play(domain.C(2, 2)); err != nil {
			log.Fatal(err)
		}
		if _, err := game.Play(domain.C(2, 2)); err != nil {
			fmt.Println(err) // illegal move W (2,2): intersection occupied
		}

		fmt.Print(game.ExportSGF())
	}

The lower layers are usable on their own: pkg/board for positions, pkg/rules
for move validation and scoring, pkg/gametree for history and pkg/sgf for the
file format.
*/
package goban
