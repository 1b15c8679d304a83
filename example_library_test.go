package labyrinth_test

import (
	"fmt"
	"log"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Example_domain builds cells by hand and walks them without any loader.
func Example_domain() {
	a, b, c := domain.NewCell("A"), domain.NewCell("B"), domain.NewCell("C")

	a.AssignPassages(domain.Passage{To: b, Cost: 4}, domain.Passage{To: c, Cost: domain.Unreachable})
	b.AssignPassages(domain.Passage{To: c, Cost: 6})
	c.AssignPassages() // dead end

	maze := domain.NewMaze("hall")
	if _, err := maze.AddCells(a, b, c); err != nil {
		log.Fatal(err)
	}

	route, err := maze.RouteFirst(a)
	if err != nil {
		log.Fatal(err)
	}
	total, err := route.TravelTime()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(route)
	fmt.Println(total)
	// Output:
	// [Cell(A) to Cell(B): 4, Cell(B) to Cell(C): 6, End of route]
	// 10
}
