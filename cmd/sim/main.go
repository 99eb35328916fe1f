package main

import (
	"log"

	"github.com/minaorangina/uno/game"
)

// Runs one fully autonomous round with random legal moves and prints
// the outcome.
func main() {
	players := []*game.Player{
		game.NewPlayer("Harry"),
		game.NewPlayer("Sally"),
		game.NewPlayer("Hermione"),
		game.NewPlayer("Horatio"),
	}

	stage := game.NewStage(players)
	winner, loser := stage.Play()

	log.Printf("round over after %d turns", stage.Turn)
	log.Printf("winner: %s", winner.Name)
	log.Printf("loser: %s (%d cards left)", loser.Name, loser.CardCount())
}
