/*
Package domain contains the vocabulary shared by every goban package.

It defines players, intersections, coordinates, moves, rulesets and the sentinel
errors returned by the rules engine and the game tree. The package is pure: it has
no I/O and no dependency on the board representation.

# Key Entities

  - Player / Point: who moves and what occupies an intersection.
  - Coord: a zero-based (Row, Col) pair; Row 0 is the top edge.
  - Move: a Play at a Coord, a Pass, or a Resign.
  - Ruleset: suicide, ko, scoring rule, pass threshold and komi, passed explicitly.
  - LifecycleHooks: callbacks fired by goban.Game for observability.
*/
package domain
