// Package schema checks the shape of decoded JSON before it is interpreted.
//
// A Schema maps field names to Types. Types cover the JSON shapes a renderer
// document uses (strings, integers, numbers, lists and nested objects) plus
// Custom checks for domain rules such as "must equal circle".
//
//	s := schema.Schema{
//	    "args": schema.Object(schema.Schema{
//	        "pin_count":       schema.Int(),
//	        "pin_arrangement": schema.String(),
//	    }),
//	    "pin_locations": schema.List(nil),
//	    "image_width":   schema.Optional(schema.Number()),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Nested failures are reported with dotted keys ("args.pin_count") and in
// key order, so messages are stable from run to run.
package schema
