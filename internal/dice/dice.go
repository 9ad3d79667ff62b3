// Package dice provides the party and dungeon die faces and uniform rolls over them.
package dice

import "fmt"

// Source is the randomness provider for rolls and draws.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Face is the capability every die face enumeration implements: a fixed face
// count and a mapping from face index to value.
type Face[T any] interface {
	comparable
	fmt.Stringer

	// Faces returns the number of faces on the die.
	Faces() int
	// Nth returns the value of face n. Panics if n is not in [0, Faces()).
	Nth(n int) T
}

// Roll returns a uniformly random face of die T.
func Roll[T Face[T]](src Source) T {
	var die T
	return die.Nth(src.Intn(die.Faces()))
}

// RollN rolls n dice of type T.
func RollN[T Face[T]](src Source, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = Roll[T](src)
	}
	return out
}

// Draw removes and returns a uniformly chosen element of pool.
// Panics on an empty pool.
func Draw[T any](src Source, pool []T) (T, []T) {
	if len(pool) == 0 {
		panic("dice: Draw precondition violated: pool must be non-empty")
	}
	i := src.Intn(len(pool))
	item := pool[i]
	rest := append(pool[:i:i], pool[i+1:]...)
	return item, rest
}

func checkFace(kind string, n, faces int) {
	if n < 0 || n >= faces {
		panic(fmt.Sprintf("dice: %s face %d out of range [0, %d)", kind, n, faces))
	}
}
