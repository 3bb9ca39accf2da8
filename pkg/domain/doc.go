/*
Package domain contains the core models of a string-art crafting plan.

It defines the fundamental entities shared by every stage of the pipeline:
the circular Board and its pins, the undirected Segments produced by the
renderer, and the directed Steps that make up a Traversal. This package is
kept pure and free of I/O so every other package can depend on it.

# Key Entities

  - Point: A pixel coordinate on the rendered image.
  - Board: The ordered pin locations; a pin's index in the list is its identity.
  - Segment: An unordered pair of distinct pins, stored as (min, max).
  - Step: An oriented Segment, "the string travels from pin From to pin To".
  - Traversal: The ordered Steps a crafter follows.
*/
package domain
