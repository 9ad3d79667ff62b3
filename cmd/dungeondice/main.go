// Package main is the entry point for DungeonDice.
package main

func main() {
	Execute()
}
