package options_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/hustcer/crowbook/pkg/options"
)

// ExampleStore shows how a book configures and reads its options.
func ExampleStore() {
	opts := options.New()
	opts.SetRoot("/books/mybook")

	if err := opts.Set("author", "Joan Doe"); err != nil {
		log.Fatal(err)
	}
	if err := opts.Set("numbering", "2"); err != nil {
		log.Fatal(err)
	}
	if err := opts.Set("cover", "img/c.png"); err != nil {
		log.Fatal(err)
	}

	author, _ := opts.GetStr("author")
	numbering, _ := opts.GetI32("numbering")
	cover, _ := opts.GetPath("cover")
	lang, _ := opts.GetStr("lang")

	fmt.Println("Author:", author)
	fmt.Println("Numbering:", numbering)
	fmt.Println("Cover:", cover)
	fmt.Println("Lang:", lang)

	err := opts.Set("autor", "John Smith")
	fmt.Println("Misspelled key rejected:", errors.Is(err, options.ErrUnrecognizedKey))

	// Output:
	// Author: Joan Doe
	// Numbering: 2
	// Cover: /books/mybook/img/c.png
	// Lang: en
	// Misspelled key rejected: true
}
