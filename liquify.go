// Package liquify provides the value-transformation layer of a Liquid-style
// template engine: the filter table, property resolution, color math and the
// paginate grid layout.
//
// Templates pipe values through named filters:
//
//	{{ product.title | upcase | truncate: 20 }}
//
// liquify does not parse templates. A host renderer resolves variables and
// calls into the Engine for every filter invocation and paginate block.
//
// # Basic Usage
//
//	engine := liquify.MustNew()
//	out, err := engine.Apply("truncate", "The quick brown fox", 10)
//	// out: "The qui..."
//
// # Empty
//
// Filters with nothing to return yield Empty rather than nil. Empty renders
// as "", is falsy, and compares equal to any falsy value:
//
//	v, _ := engine.Apply("first", []any{})
//	liquify.IsEmptyValue(v) // true
//	engine.Display(v)       // ""
//
// # Property Access
//
// GetProperty reads map keys, slice indexes, exported struct fields, json
// tag names and zero-argument methods, in that order. Types implementing
// KeyedReader take full control of lookups.
//
// # Custom Filters
//
// Filters registered with WithFilter replace built-ins of the same name:
//
//	engine, err := liquify.New(
//	    liquify.WithFilter(&liquify.Filter{
//	        Name:    "shout",
//	        MaxArgs: 0,
//	        Fn: func(base any, _ []any) (any, error) {
//	            return strings.ToUpper(liquify.ToString(base)) + "!", nil
//	        },
//	    }),
//	)
//
// When Name is empty the filter is named after its Go function, so
// filterShoutLoud registers as "shout_loud".
//
// # Paginate
//
// Engine.Paginate lays a sequence out as rows of cells and renders each cell
// in its own child scope:
//
//	out, err := engine.Paginate(products, liquify.GridOptions{
//	    ItemVar: "product",
//	    Cols:    liquify.Int(3),
//	}, local, global, renderCell)
//
// # Snippets
//
// Named, pre-rendered snippets are served from a SnippetStore. A missing
// snippet renders as empty text:
//
//	store := liquify.NewMemorySnippetStore()
//	engine := liquify.MustNew(liquify.WithSnippetStore(store))
//	text, err := engine.RenderSnippet(ctx, "footer")
//
// # Thread Safety
//
// The filter table is built once inside New and never changes afterwards.
// An Engine may be shared by any number of goroutines.
package liquify
