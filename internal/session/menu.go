package session

import (
	"github.com/xenking/starbuzz/internal/domain/beverage"
)

const (
	welcomeLine          = "Welcome to Starbuzz Coffee!"
	coffeePrompt         = "Please select your coffee:"
	condimentPrompt      = "Please select condiments (comma-separated):"
	msgInvalidCoffee     = "Invalid coffee choice. Exiting..."
	msgInvalidCondiments = "Invalid condiment choices. Exiting..."
)

func (s *Session) printCoffeeMenu() {
	s.println(coffeePrompt)
	for _, k := range beverage.Kinds() {
		s.printf("%s. %s\n", k.Token(), k.Description())
	}
}

func (s *Session) printCondimentMenu() {
	s.println(condimentPrompt)
	for _, c := range beverage.AllCondiments() {
		s.printf("%s. %s (%s)\n", c.Token(), c.Label(), c.Price().StringFixed(2))
	}
}
