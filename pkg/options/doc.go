// Package options provides the typed option store of a book.
//
// A [Store] knows every option declared in the compiled-in catalog (see
// package schema) and its type. Values always cross the boundary as text and
// are checked against the declared type when set:
//
//	opts := options.New()
//	opts.SetRoot("/books/mybook")
//
//	if err := opts.Set("numbering", "2"); err != nil {
//	    // bad value or unknown key
//	}
//	n, _ := opts.GetI32("numbering") // 2
//
//	_ = opts.Set("autor", "Jane Doe") // error: "autor" is not an option
//
// # Types
//
// Every option is one of string, path, char, boolean or integer:
//
//	author:str       any text
//	cover:path       text, resolved against the root by GetPath
//	nb_char:char     a single quoted character, e.g. ' '
//	display_toc:bool true or false
//	numbering:int    a base-10 32-bit integer
//
// # Errors
//
// Failures are reported as *[Error] wrapping one of the sentinel errors, so
// callers can test them with errors.Is:
//
//	err := opts.Set("numbering", "foo")
//	errors.Is(err, options.ErrParseInt) // true
//
// A failed Set leaves the previous value in place.
//
// # Documentation
//
// [Description] renders the catalog as Markdown or plain text, and
// [DescribeKeys] returns it as structured data.
package options
