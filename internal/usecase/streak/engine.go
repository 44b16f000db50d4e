// Package streak computes no-draw run lengths over chronologically ordered
// match results.
package streak

import "streakwatch/internal/domain/entity"

// Advance folds new matches into a prior streak length and returns the new
// length plus the match that currently ends the streak.
//
// A draw resets the streak to zero and clears the reference; any other result
// extends the streak and moves the reference to that match. The fold is pure:
// the same inputs always produce the same outputs, and an empty input is the
// identity on prior with a nil reference.
func Advance(prior int, matches entity.MatchList) (int, *entity.Match) {
	length := prior
	var last *entity.Match

	for i := range matches {
		if matches[i].IsDraw() {
			length = 0
			last = nil
			continue
		}
		length++
		last = &matches[i]
	}

	return length, last
}
